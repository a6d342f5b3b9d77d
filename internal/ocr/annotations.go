package ocr

import (
	"encoding/json"
	"fmt"

	vision "google.golang.org/api/vision/v1"
)

// DecodeAnnotation reads a Vision API annotation document. Both shapes seen
// in stored annotations are accepted: the batch envelope {"responses": [...]}
// produced by images.annotate, where the first response wins, and a bare
// single response object. Missing sections yield empty fields, not errors.
func DecodeAnnotation(data []byte) (*Result, error) {
	var batch vision.BatchAnnotateImagesResponse
	if err := json.Unmarshal(data, &batch); err == nil && len(batch.Responses) > 0 {
		return fromResponse(batch.Responses[0]), nil
	}

	var single vision.AnnotateImageResponse
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("DecodeAnnotation: unmarshaling annotation: %w", err)
	}
	return fromResponse(&single), nil
}

// fromResponse maps one Vision response to a Result. The first text
// annotation carries the full recognized text; the rest are per-word boxes
// this pipeline does not use.
func fromResponse(resp *vision.AnnotateImageResponse) *Result {
	result := &Result{
		LogoLabels: []string{},
		Labels:     []string{},
	}
	if len(resp.TextAnnotations) > 0 {
		result.Text = resp.TextAnnotations[0].Description
	}
	for _, logo := range resp.LogoAnnotations {
		result.LogoLabels = append(result.LogoLabels, logo.Description)
	}
	for _, label := range resp.LabelAnnotations {
		result.Labels = append(result.Labels, label.Description)
	}
	return result
}
