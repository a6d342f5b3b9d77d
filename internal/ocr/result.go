package ocr

// Result is the OCR evidence extracted from one receipt image: the full
// recognized text plus logo and document label detections. It is the sole
// input to the parsing pipeline.
type Result struct {
	Text       string   `json:"text"`
	LogoLabels []string `json:"logo_labels"`
	Labels     []string `json:"labels"`
}
