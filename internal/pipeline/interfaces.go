package pipeline

import (
	"context"

	bq "github.com/jgiraldoc/receipt-parser/internal/bigquery"
)

// StorageService is an interface for storage operations.
type StorageService interface {
	FetchFromGCS(ctx context.Context, gcsURI string) ([]byte, error)
	ExtractFilenameFromGCSURI(uri string) string
}

// ReceiptRepository is the persistence surface the ingestion pipeline needs.
// This is a minimal interface used by the pipeline steps to avoid circular
// dependencies. For the full repository, see bigquery.ReceiptRepository.
type ReceiptRepository interface {
	InsertReceipt(ctx context.Context, row *bq.ReceiptRow) error
	MarkReceiptParsed(ctx context.Context, receiptID, rawText, checksum string) error
	MarkReceiptFailed(ctx context.Context, receiptID string, cause error)
	InsertTransaction(ctx context.Context, row *bq.TransactionRow) error
}
