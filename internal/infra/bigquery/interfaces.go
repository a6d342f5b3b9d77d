package bigquery

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/bigquery"

	bq "github.com/jgiraldoc/receipt-parser/internal/bigquery"
)

// Re-export interfaces and row types from the shared package for backward compatibility
type ReceiptRepository = bq.ReceiptRepository
type ReceiptRow = bq.ReceiptRow
type TransactionRow = bq.TransactionRow
type AmountRecord = bq.AmountRecord

// BigQueryReceiptRepository is the concrete implementation of
// ReceiptRepository that interacts with BigQuery. It holds a shared BigQuery
// client to avoid creating a new connection for each operation.
type BigQueryReceiptRepository struct {
	client *bigquery.Client
}

// NewBigQueryReceiptRepository creates a new instance of
// BigQueryReceiptRepository with a shared BigQuery client.
func NewBigQueryReceiptRepository(ctx context.Context) (*BigQueryReceiptRepository, error) {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return nil, fmt.Errorf("NewBigQueryReceiptRepository: creating client: %w", err)
	}
	return &BigQueryReceiptRepository{
		client: client,
	}, nil
}

// Close closes the BigQuery client connection. This should be called when
// the repository is no longer needed to release resources.
func (r *BigQueryReceiptRepository) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}

// InsertReceipt delegates to the existing InsertReceipt function with the shared client.
func (r *BigQueryReceiptRepository) InsertReceipt(ctx context.Context, row *ReceiptRow) error {
	return InsertReceiptWithClient(ctx, r.client, row)
}

// MarkReceiptParsed delegates to the existing MarkReceiptParsed function with the shared client.
func (r *BigQueryReceiptRepository) MarkReceiptParsed(ctx context.Context, receiptID, rawText, checksum string) error {
	return MarkReceiptParsedWithClient(ctx, r.client, receiptID, rawText, checksum)
}

// MarkReceiptFailed delegates to the existing MarkReceiptFailed function with the shared client.
func (r *BigQueryReceiptRepository) MarkReceiptFailed(ctx context.Context, receiptID string, cause error) {
	MarkReceiptFailedWithClient(ctx, r.client, receiptID, cause)
}

// InsertTransaction delegates to the existing InsertTransaction function with the shared client.
func (r *BigQueryReceiptRepository) InsertTransaction(ctx context.Context, row *TransactionRow) error {
	return InsertTransactionWithClient(ctx, r.client, row)
}

// ListReceipts delegates to the existing ListReceipts function with the shared client.
func (r *BigQueryReceiptRepository) ListReceipts(ctx context.Context) ([]*ReceiptRow, error) {
	return ListReceiptsWithClient(ctx, r.client)
}

// FindReceiptByChecksum delegates to the existing FindReceiptByChecksum function with the shared client.
func (r *BigQueryReceiptRepository) FindReceiptByChecksum(ctx context.Context, checksum string) (*ReceiptRow, error) {
	return FindReceiptByChecksumWithClient(ctx, r.client, checksum)
}

// QueryTransactionsByDateRange delegates to the existing QueryTransactionsByDateRange function with the shared client.
func (r *BigQueryReceiptRepository) QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*TransactionRow, error) {
	return QueryTransactionsByDateRangeWithClient(ctx, r.client, startDate, endDate)
}
