package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/config"
	"github.com/jgiraldoc/receipt-parser/internal/gcs"
	infraBQ "github.com/jgiraldoc/receipt-parser/internal/infra/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/jobs"
	"github.com/jgiraldoc/receipt-parser/internal/jobs/inmemory"
	"github.com/jgiraldoc/receipt-parser/internal/logger"
	"github.com/jgiraldoc/receipt-parser/internal/pipeline"
)

func main() {
	cfg := config.Load()

	log := logger.New()

	// Initialize job store and queue
	// In production, this would be replaced with Cloud Tasks or Pub/Sub
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(cfg.QueueBufferSize, cfg.WorkerCount, jobStore)

	log.Info().Int("workers", cfg.WorkerCount).Msg("Starting worker service")

	// Create context that cancels on interrupt
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryReceiptRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create receipt repository")
	}
	defer repo.Close()

	storage := gcs.NewGCSStorageService()

	// Create job handler that processes parse jobs
	handler := func(ctx context.Context, job jobs.Job) error {
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

	// Start consuming jobs
	if err := jobQueue.Start(ctx, handler); err != nil {
		log.Fatal().Err(err).Msg("Failed to start job consumer")
	}

	log.Info().Msg("Worker service started, waiting for jobs...")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker service...")

	// Cancel context to stop workers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Stop the queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during graceful shutdown")
	}

	log.Info().Msg("Worker service exited")
}
