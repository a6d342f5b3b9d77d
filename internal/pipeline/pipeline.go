// Package pipeline turns OCR output from bank receipts into structured,
// validated transactions. The extraction core (Build, Validate, Process) is
// pure; the ingestion pipeline around it wires GCS and BigQuery in.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
	"github.com/jgiraldoc/receipt-parser/internal/logger"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
)

// Process runs the full extraction pass over an OCR result: build the
// transaction aggregate, then validate it. It is total over any input; empty
// or unrecognizable text yields an empty aggregate and an invalid verdict,
// never an error.
func Process(res ocr.Result) (*domain.BankTransaction, domain.TransactionValidation) {
	tx := Build(res)
	return tx, Validate(tx)
}

// IngestResult reports what a completed ingestion run produced.
type IngestResult struct {
	ReceiptID   string
	Transaction *domain.BankTransaction
	Validation  domain.TransactionValidation
}

// IngestReceiptFromGCS processes a single receipt annotation stored in GCS.
// gcsURI should look like: "gs://bucket/path/to/annotation.json".
func IngestReceiptFromGCS(ctx context.Context, storage StorageService, repo ReceiptRepository, gcsURI string) (*IngestResult, error) {
	log := logger.FromContext(ctx)
	start := time.Now()

	state := &PipelineState{GCSURI: gcsURI}
	if err := NewReceiptIngestionPipeline(storage, repo).Execute(ctx, state); err != nil {
		return nil, fmt.Errorf("IngestReceiptFromGCS: %w", err)
	}

	log.Info().
		Str("receipt_id", state.ReceiptID).
		Str("gcs_uri", gcsURI).
		Str("transaction_type", string(state.Transaction.TransactionType)).
		Int("amounts", len(state.Transaction.Amounts)).
		Bool("is_valid", state.Validation.IsValid).
		Dur("duration", time.Since(start)).
		Msg("Receipt ingested")

	return &IngestResult{
		ReceiptID:   state.ReceiptID,
		Transaction: state.Transaction,
		Validation:  state.Validation,
	}, nil
}
