package bigquery

import (
	"context"
	"fmt"

	"cloud.google.com/go/bigquery"
	"google.golang.org/api/iterator"
)

// ListReceipts retrieves all receipts from the database.
func ListReceipts(ctx context.Context) ([]*ReceiptRow, error) {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return nil, fmt.Errorf("ListReceipts: creating client: %w", err)
	}
	defer client.Close()

	return ListReceiptsWithClient(ctx, client)
}

// ListReceiptsWithClient retrieves all receipts using the provided BigQuery client.
func ListReceiptsWithClient(ctx context.Context, client *bigquery.Client) ([]*ReceiptRow, error) {
	query := fmt.Sprintf(`
		SELECT
			receipt_id,
			user_id,
			gcs_uri,
			source_system,
			upload_ts,
			processed_ts,
			parse_status,
			error_message,
			original_filename,
			raw_text,
			checksum_sha256,
			metadata
		FROM `+"`%s.%s.receipts`"+`
		ORDER BY upload_ts DESC
	`, ProjectID(), datasetID)

	q := client.Query(query)
	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("ListReceiptsWithClient: reading query: %w", err)
	}

	var receipts []*ReceiptRow
	for {
		var row ReceiptRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ListReceiptsWithClient: iterating: %w", err)
		}
		receipts = append(receipts, &row)
	}

	return receipts, nil
}

// FindReceiptByChecksum retrieves a receipt by the SHA-256 checksum of its
// annotation file. Returns nil if no receipt with the given checksum exists.
func FindReceiptByChecksum(ctx context.Context, checksum string) (*ReceiptRow, error) {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return nil, fmt.Errorf("FindReceiptByChecksum: creating client: %w", err)
	}
	defer client.Close()

	return FindReceiptByChecksumWithClient(ctx, client, checksum)
}

// FindReceiptByChecksumWithClient retrieves a receipt by checksum using the
// provided BigQuery client.
func FindReceiptByChecksumWithClient(ctx context.Context, client *bigquery.Client, checksum string) (*ReceiptRow, error) {
	query := fmt.Sprintf(`
		SELECT
			receipt_id,
			user_id,
			gcs_uri,
			source_system,
			upload_ts,
			processed_ts,
			parse_status,
			error_message,
			original_filename,
			raw_text,
			checksum_sha256,
			metadata
		FROM `+"`%s.%s.receipts`"+`
		WHERE checksum_sha256 = @checksum
		LIMIT 1
	`, ProjectID(), datasetID)

	q := client.Query(query)
	q.Parameters = []bigquery.QueryParameter{
		{Name: "checksum", Value: checksum},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("FindReceiptByChecksumWithClient: reading query: %w", err)
	}

	var row ReceiptRow
	err = it.Next(&row)
	if err == iterator.Done {
		// No receipt with this checksum yet
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindReceiptByChecksumWithClient: reading row: %w", err)
	}

	return &row, nil
}
