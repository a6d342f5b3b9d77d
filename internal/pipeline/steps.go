package pipeline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"

	bq "github.com/jgiraldoc/receipt-parser/internal/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/domain"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
)

// PipelineStep represents a single step in the ingestion pipeline.
type PipelineStep interface {
	Execute(ctx context.Context, state *PipelineState) error
}

// PipelineState holds the shared state across all pipeline steps.
type PipelineState struct {
	GCSURI          string
	ReceiptID       string
	AnnotationBytes []byte
	Checksum        string
	OCR             ocr.Result
	Transaction     *domain.BankTransaction
	Validation      domain.TransactionValidation
}

// Step 1: RegisterReceiptStep creates a receipt record for the annotation file.
type RegisterReceiptStep struct {
	Storage StorageService
	Repo    ReceiptRepository
}

func (s *RegisterReceiptStep) Execute(ctx context.Context, state *PipelineState) error {
	receiptID := uuid.NewString()

	row := &bq.ReceiptRow{
		ReceiptID:        receiptID,
		UserID:           DefaultUserID,
		GCSURI:           state.GCSURI,
		SourceSystem:     DefaultSourceSystem,
		ParseStatus:      "PENDING",
		UploadTS:         time.Now(),
		OriginalFilename: s.Storage.ExtractFilenameFromGCSURI(state.GCSURI),
	}
	if err := s.Repo.InsertReceipt(ctx, row); err != nil {
		return fmt.Errorf("registering receipt: %w", err)
	}

	state.ReceiptID = receiptID
	return nil
}

// Step 2: FetchAnnotationStep fetches the annotation bytes from GCS.
type FetchAnnotationStep struct {
	Storage StorageService
	Repo    ReceiptRepository
}

func (s *FetchAnnotationStep) Execute(ctx context.Context, state *PipelineState) error {
	data, err := s.Storage.FetchFromGCS(ctx, state.GCSURI)
	if err != nil {
		s.Repo.MarkReceiptFailed(ctx, state.ReceiptID, err)
		return err
	}
	state.AnnotationBytes = data
	state.Checksum = checksumSHA256(data)
	return nil
}

// Step 3: DecodeAnnotationStep decodes the Vision annotation into an OCR result.
type DecodeAnnotationStep struct {
	Repo ReceiptRepository
}

func (s *DecodeAnnotationStep) Execute(ctx context.Context, state *PipelineState) error {
	res, err := ocr.DecodeAnnotation(state.AnnotationBytes)
	if err != nil {
		s.Repo.MarkReceiptFailed(ctx, state.ReceiptID, err)
		return err
	}
	state.OCR = *res
	return nil
}

// Step 4: ParseReceiptStep runs the extraction core over the OCR result.
// Extraction is total, so this step never fails.
type ParseReceiptStep struct{}

func (s *ParseReceiptStep) Execute(ctx context.Context, state *PipelineState) error {
	state.Transaction, state.Validation = Process(state.OCR)
	return nil
}

// Step 5: StoreResultsStep inserts the transaction and marks the receipt parsed.
type StoreResultsStep struct {
	Repo ReceiptRepository
}

func (s *StoreResultsStep) Execute(ctx context.Context, state *PipelineState) error {
	row := bq.NewTransactionRow(state.Transaction, state.Validation, state.ReceiptID, DefaultUserID)
	row.ParserVersion = ParserVersion
	if err := s.Repo.InsertTransaction(ctx, row); err != nil {
		s.Repo.MarkReceiptFailed(ctx, state.ReceiptID, err)
		return err
	}
	if err := s.Repo.MarkReceiptParsed(ctx, state.ReceiptID, state.Transaction.RawText, state.Checksum); err != nil {
		return err
	}
	return nil
}

// Pipeline executes a sequence of steps in order.
type Pipeline struct {
	steps []PipelineStep
}

// NewPipeline creates a new pipeline with the given steps.
func NewPipeline(steps ...PipelineStep) *Pipeline {
	return &Pipeline{steps: steps}
}

// Execute runs all steps in the pipeline sequentially.
func (p *Pipeline) Execute(ctx context.Context, state *PipelineState) error {
	for i, step := range p.steps {
		if err := step.Execute(ctx, state); err != nil {
			return fmt.Errorf("pipeline step %d failed: %w", i+1, err)
		}
	}
	return nil
}

// NewReceiptIngestionPipeline creates the standard 5-step pipeline for ingesting receipts.
func NewReceiptIngestionPipeline(storage StorageService, repo ReceiptRepository) *Pipeline {
	return NewPipeline(
		&RegisterReceiptStep{Storage: storage, Repo: repo},
		&FetchAnnotationStep{Storage: storage, Repo: repo},
		&DecodeAnnotationStep{Repo: repo},
		&ParseReceiptStep{},
		&StoreResultsStep{Repo: repo},
	)
}

func checksumSHA256(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
