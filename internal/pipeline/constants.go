package pipeline

// Default values for receipt ingestion.
// These can be overridden via configuration or environment variables in the future.
const (
	// DefaultUserID is the default user identifier for receipts and transactions.
	DefaultUserID = "jgiraldo"

	// DefaultSourceSystem is the default source system for ingested receipts.
	DefaultSourceSystem = "VISION_OCR"

	// ParserVersion identifies the extraction rule set that produced a parse.
	ParserVersion = "v1"
)
