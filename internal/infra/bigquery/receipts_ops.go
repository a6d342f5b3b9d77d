package bigquery

import (
	"context"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/jgiraldoc/receipt-parser/internal/logger"
)

const (
	defaultProjectID = "receipts-parser-471119"
	datasetID        = "receipts"
	receiptsTable    = "receipts"
)

// ProjectID returns the BigQuery project to target, honoring BIGQUERY_PROJECT
// when set.
func ProjectID() string {
	if p := os.Getenv("BIGQUERY_PROJECT"); p != "" {
		return p
	}
	return defaultProjectID
}

// InsertReceipt inserts a single ReceiptRow into receipts.receipts.
func InsertReceipt(ctx context.Context, row *ReceiptRow) error {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return fmt.Errorf("InsertReceipt: bigquery client: %w", err)
	}
	defer client.Close()

	return InsertReceiptWithClient(ctx, client, row)
}

// InsertReceiptWithClient inserts a single ReceiptRow into receipts.receipts
// using the provided BigQuery client. Uses DML INSERT so the row can be
// updated right away when the parse finishes, avoiding streaming buffer issues.
func InsertReceiptWithClient(ctx context.Context, client *bigquery.Client, row *ReceiptRow) error {
	q := client.Query(fmt.Sprintf(`
		INSERT %s.%s (
			receipt_id,
			user_id,
			gcs_uri,
			source_system,
			upload_ts,
			parse_status,
			original_filename
		)
		VALUES (
			@receipt_id,
			@user_id,
			@gcs_uri,
			@source_system,
			@upload_ts,
			@parse_status,
			@original_filename
		)
	`, datasetID, receiptsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "receipt_id", Value: row.ReceiptID},
		{Name: "user_id", Value: row.UserID},
		{Name: "gcs_uri", Value: row.GCSURI},
		{Name: "source_system", Value: row.SourceSystem},
		{Name: "upload_ts", Value: row.UploadTS},
		{Name: "parse_status", Value: row.ParseStatus},
		{Name: "original_filename", Value: row.OriginalFilename},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("InsertReceipt: running insert query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("InsertReceipt: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("InsertReceipt: job error: %w", err)
	}

	return nil
}

// MarkReceiptParsed sets parse_status=PARSED, processed_ts, raw_text and
// checksum_sha256 for a receipt.
func MarkReceiptParsed(ctx context.Context, receiptID, rawText, checksum string) error {
	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		return fmt.Errorf("MarkReceiptParsed: bigquery client: %w", err)
	}
	defer client.Close()

	return MarkReceiptParsedWithClient(ctx, client, receiptID, rawText, checksum)
}

// MarkReceiptParsedWithClient sets parse_status=PARSED, processed_ts, raw_text
// and checksum_sha256 using the provided BigQuery client.
func MarkReceiptParsedWithClient(ctx context.Context, client *bigquery.Client, receiptID, rawText, checksum string) error {
	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET parse_status = @parse_status,
		    processed_ts = @processed_ts,
		    raw_text = @raw_text,
		    checksum_sha256 = @checksum_sha256,
		    error_message = ""
		WHERE receipt_id = @receipt_id
	`, datasetID, receiptsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "parse_status", Value: "PARSED"},
		{Name: "processed_ts", Value: time.Now()},
		{Name: "raw_text", Value: rawText},
		{Name: "checksum_sha256", Value: checksum},
		{Name: "receipt_id", Value: receiptID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		return fmt.Errorf("MarkReceiptParsed: running update query: %w", err)
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return fmt.Errorf("MarkReceiptParsed: waiting for job: %w", err)
	}
	if err := status.Err(); err != nil {
		return fmt.Errorf("MarkReceiptParsed: job error: %w", err)
	}

	return nil
}

// MarkReceiptFailed sets parse_status=FAILED, processed_ts and error_message.
func MarkReceiptFailed(ctx context.Context, receiptID string, parseErr error) {
	log := logger.FromContext(ctx)

	client, err := bigquery.NewClient(ctx, ProjectID())
	if err != nil {
		log.Error().
			Err(err).
			Str("receipt_id", receiptID).
			Msg("MarkReceiptFailed: bigquery client error")
		return
	}
	defer client.Close()

	MarkReceiptFailedWithClient(ctx, client, receiptID, parseErr)
}

// MarkReceiptFailedWithClient sets parse_status=FAILED, processed_ts and
// error_message using the provided BigQuery client.
func MarkReceiptFailedWithClient(ctx context.Context, client *bigquery.Client, receiptID string, parseErr error) {
	log := logger.FromContext(ctx)

	errMsg := ""
	if parseErr != nil {
		errMsg = parseErr.Error()
		const maxLen = 2000
		if len(errMsg) > maxLen {
			errMsg = errMsg[:maxLen]
		}
	}

	q := client.Query(fmt.Sprintf(`
		UPDATE %s.%s
		SET parse_status = @parse_status,
		    processed_ts = @processed_ts,
		    error_message = @error_message
		WHERE receipt_id = @receipt_id
	`, datasetID, receiptsTable))

	q.Parameters = []bigquery.QueryParameter{
		{Name: "parse_status", Value: "FAILED"},
		{Name: "processed_ts", Value: time.Now()},
		{Name: "error_message", Value: errMsg},
		{Name: "receipt_id", Value: receiptID},
	}

	job, err := q.Run(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("receipt_id", receiptID).
			Msg("MarkReceiptFailed: running update query")
		return
	}

	status, err := job.Wait(ctx)
	if err != nil {
		log.Error().
			Err(err).
			Str("receipt_id", receiptID).
			Msg("MarkReceiptFailed: waiting for job")
		return
	}
	if err := status.Err(); err != nil {
		log.Error().
			Err(err).
			Str("receipt_id", receiptID).
			Msg("MarkReceiptFailed: job completed with error")
	}
}
