package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/api/handlers"
	"github.com/jgiraldoc/receipt-parser/internal/api/middleware"
	"github.com/jgiraldoc/receipt-parser/internal/config"
	"github.com/jgiraldoc/receipt-parser/internal/gcs"
	infraBQ "github.com/jgiraldoc/receipt-parser/internal/infra/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/jobs"
	"github.com/jgiraldoc/receipt-parser/internal/jobs/inmemory"
	"github.com/jgiraldoc/receipt-parser/internal/logger"
	"github.com/jgiraldoc/receipt-parser/internal/pipeline"
)

func main() {
	// Load configuration before the logger so LOG_LEVEL from .env applies
	cfg := config.Load()

	log := logger.New()

	log.Info().
		Str("port", cfg.Port).
		Str("bucket", cfg.GCSBucket).
		Str("project", cfg.BigQueryProject).
		Int("workers", cfg.WorkerCount).
		Msg("Configuration loaded")

	ctx := context.Background()

	// Initialize repositories
	repo, err := infraBQ.NewBigQueryReceiptRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create receipt repository")
	}
	defer repo.Close()

	storage := gcs.NewGCSStorageService()

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueBufferSize, cfg.WorkerCount, jobStore)

	// Start worker in background to process jobs
	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()
	workerCtx = logger.WithContext(workerCtx, log)

	// Create job handler for processing parse jobs
	jobHandler := func(ctx context.Context, job jobs.Job) error {
		parseJob, ok := job.(*jobs.ParseReceiptJob)
		if !ok {
			return fmt.Errorf("unexpected job type: %T", job)
		}

		log.Info().
			Str("job_id", parseJob.JobID).
			Str("gcs_uri", parseJob.GCSURI).
			Msg("Processing parse job")

		result, err := pipeline.IngestReceiptFromGCS(ctx, storage, repo, parseJob.GCSURI)
		if err != nil {
			log.Error().
				Err(err).
				Str("job_id", parseJob.JobID).
				Str("gcs_uri", parseJob.GCSURI).
				Msg("Pipeline execution failed")
			return err
		}

		parseJob.ReceiptID = result.ReceiptID

		log.Info().
			Str("job_id", parseJob.JobID).
			Str("receipt_id", result.ReceiptID).
			Bool("is_valid", result.Validation.IsValid).
			Msg("Pipeline execution completed")

		return nil
	}

	// Start job consumer in background
	go func() {
		log.Info().Msg("Starting job workers")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Job workers stopped with error")
		}
	}()

	// Initialize handlers
	processor := pipeline.NewCachedProcessor(cfg.CacheTTL, cfg.CacheSweepInterval)
	parseHandler := handlers.NewParseHandler(processor, log)
	receiptsHandler := handlers.NewReceiptsHandler(repo, jobQueue, log)
	transactionsHandler := handlers.NewTransactionsHandler(repo, log)
	jobsHandler := handlers.NewJobsHandler(jobStore, log)

	// Create router
	mux := http.NewServeMux()

	mux.HandleFunc("/api/v1/parse", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			parseHandler.ParseReceipt(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/receipts", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			receiptsHandler.ListReceipts(w, r)
		case http.MethodPost:
			receiptsHandler.EnqueueReceipt(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/transactions", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			transactionsHandler.ListTransactions(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/jobs", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			jobsHandler.ListJobs(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/v1/jobs/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			// Extract job ID from path
			jobID := strings.TrimPrefix(r.URL.Path, "/api/v1/jobs/")
			if jobID == "" {
				middleware.WriteError(w, http.StatusBadRequest, "Job ID is required")
				return
			}
			jobsHandler.GetJob(w, r, jobID)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	// Health check endpoint
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Apply middleware
	handler := middleware.RequestID(
		middleware.Logger(log)(
			middleware.Recovery(log)(
				middleware.CORS(mux),
			),
		),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Cancel worker context
	cancelWorker()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}

	log.Info().Msg("Server exited")
}
