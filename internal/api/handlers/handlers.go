package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/api/middleware"
	"github.com/jgiraldoc/receipt-parser/internal/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/jobs"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
	"github.com/jgiraldoc/receipt-parser/internal/pipeline"
	"github.com/rs/zerolog"
)

// maxParseBodyBytes caps the synchronous parse request body. Vision
// annotations for a single receipt stay well under this.
const maxParseBodyBytes = 4 << 20

// ParseHandler handles the synchronous parse endpoint.
type ParseHandler struct {
	processor *pipeline.CachedProcessor
	log       zerolog.Logger
}

// NewParseHandler creates a new parse handler.
func NewParseHandler(processor *pipeline.CachedProcessor, log zerolog.Logger) *ParseHandler {
	return &ParseHandler{
		processor: processor,
		log:       log,
	}
}

// ParseReceipt handles POST /api/v1/parse
// The body is either a Vision annotation document or a bare OCR payload
// {"text": ..., "logo_labels": [...], "labels": [...]}. The response carries
// the extracted transaction and its validation verdict.
func (h *ParseHandler) ParseReceipt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxParseBodyBytes))
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	res, err := decodeParseRequest(body)
	if err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Body must be a Vision annotation or an OCR text payload")
		return
	}

	start := time.Now()
	tx, validation := h.processor.Process(*res)

	h.log.Info().
		Str("transaction_id", tx.ID).
		Str("transaction_type", string(tx.TransactionType)).
		Int("amounts", len(tx.Amounts)).
		Bool("is_valid", validation.IsValid).
		Dur("duration", time.Since(start)).
		Msg("Receipt parsed")

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transaction": tx,
		"validation":  validation,
	})
}

// decodeParseRequest accepts the two body shapes the parse endpoint takes.
// Anything with Vision annotation keys goes through the annotation decoder;
// otherwise the body must carry a "text" field.
func decodeParseRequest(body []byte) (*ocr.Result, error) {
	var probe struct {
		Text             *string         `json:"text"`
		Responses        json.RawMessage `json:"responses"`
		TextAnnotations  json.RawMessage `json:"textAnnotations"`
		LogoAnnotations  json.RawMessage `json:"logoAnnotations"`
		LabelAnnotations json.RawMessage `json:"labelAnnotations"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("decoding parse request: %w", err)
	}

	if probe.Responses != nil || probe.TextAnnotations != nil ||
		probe.LogoAnnotations != nil || probe.LabelAnnotations != nil {
		return ocr.DecodeAnnotation(body)
	}

	if probe.Text == nil {
		return nil, fmt.Errorf("parse request has no text field")
	}

	var res ocr.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decoding OCR payload: %w", err)
	}
	return &res, nil
}

// ReceiptsHandler handles receipt-related endpoints.
type ReceiptsHandler struct {
	repo      bigquery.ReceiptRepository
	publisher jobs.Publisher
	log       zerolog.Logger
}

// NewReceiptsHandler creates a new receipts handler.
func NewReceiptsHandler(repo bigquery.ReceiptRepository, publisher jobs.Publisher, log zerolog.Logger) *ReceiptsHandler {
	return &ReceiptsHandler{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// ListReceipts handles GET /api/v1/receipts
func (h *ReceiptsHandler) ListReceipts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	receipts, err := h.repo.ListReceipts(ctx)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list receipts")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list receipts")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"receipts": receipts,
		"count":    len(receipts),
	})
}

// EnqueueReceipt handles POST /api/v1/receipts
// It queues ingestion of an annotation already sitting in GCS and returns
// the job ID so the caller can poll for completion.
func (h *ReceiptsHandler) EnqueueReceipt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GCSURI string `json:"gcs_uri"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.GCSURI == "" {
		middleware.WriteError(w, http.StatusBadRequest, "gcs_uri is required")
		return
	}

	ctx := r.Context()

	job := &jobs.ParseReceiptJob{
		GCSURI: req.GCSURI,
	}

	if err := h.publisher.PublishParseReceipt(ctx, job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue parse job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue parse job")
		return
	}

	h.log.Info().Str("job_id", job.JobID).Str("gcs_uri", req.GCSURI).Msg("Parse job enqueued")

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id":  job.JobID,
		"gcs_uri": req.GCSURI,
		"status":  string(job.Status),
	})
}

// TransactionsHandler handles transaction-related endpoints.
type TransactionsHandler struct {
	repo bigquery.ReceiptRepository
	log  zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(repo bigquery.ReceiptRepository, log zerolog.Logger) *TransactionsHandler {
	return &TransactionsHandler{
		repo: repo,
		log:  log,
	}
}

// ListTransactions handles GET /api/v1/transactions
func (h *TransactionsHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	startDateStr := query.Get("start_date")
	endDateStr := query.Get("end_date")

	var startDate, endDate time.Time
	var err error

	if startDateStr != "" {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid start_date format")
			return
		}
	} else {
		startDate = time.Now().AddDate(-1, 0, 0) // 1 year ago
	}

	if endDateStr != "" {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			middleware.WriteError(w, http.StatusBadRequest, "Invalid end_date format")
			return
		}
	} else {
		endDate = time.Now()
	}

	transactions, err := h.repo.QueryTransactionsByDateRange(ctx, startDate, endDate)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to query transactions")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to query transactions")
		return
	}

	if transactions == nil {
		transactions = []*bigquery.TransactionRow{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"count":        len(transactions),
	})
}

// JobsHandler handles job-related endpoints.
type JobsHandler struct {
	store jobs.JobStore
	log   zerolog.Logger
}

// NewJobsHandler creates a new jobs handler.
func NewJobsHandler(store jobs.JobStore, log zerolog.Logger) *JobsHandler {
	return &JobsHandler{
		store: store,
		log:   log,
	}
}

// GetJob handles GET /api/v1/jobs/{id}
func (h *JobsHandler) GetJob(w http.ResponseWriter, r *http.Request, jobID string) {
	ctx := r.Context()

	job, err := h.store.GetJob(ctx, jobID)
	if err != nil {
		h.log.Error().Err(err).Str("job_id", jobID).Msg("Failed to get job")
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}

// ListJobs handles GET /api/v1/jobs
func (h *JobsHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query()
	filter := jobs.JobFilter{
		GCSURI: query.Get("gcs_uri"),
		Status: jobs.JobStatus(query.Get("status")),
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			filter.Limit = limit
		}
	}

	if offsetStr := query.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			filter.Offset = offset
		}
	}

	jobsList, err := h.store.ListJobs(ctx, filter)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to list jobs")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to list jobs")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"jobs":  jobsList,
		"count": len(jobsList),
	})
}
