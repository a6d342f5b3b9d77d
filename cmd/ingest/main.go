package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"flag"
	"fmt"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/gcs"
	infraBQ "github.com/jgiraldoc/receipt-parser/internal/infra/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/logger"
	"github.com/jgiraldoc/receipt-parser/internal/pipeline"
)

func main() {
	// Initialize structured logger
	log := logger.New()

	// Parse CLI flags
	gcsURI := flag.String("gcs-uri", "", "GCS URI of the receipt annotation (e.g. gs://bucket/receipt.json)")
	force := flag.Bool("force", false, "Re-ingest even when the annotation was already parsed")
	flag.Parse()

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	// Create context with timeout so CLI doesn't hang
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Add logger to context
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryReceiptRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create receipt repository")
	}
	defer repo.Close()

	storage := gcs.NewGCSStorageService()

	if !*force {
		// Skip annotations whose exact bytes were already ingested
		data, err := storage.FetchFromGCS(ctx, *gcsURI)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to fetch annotation")
		}
		sum := sha256.Sum256(data)
		checksum := hex.EncodeToString(sum[:])

		existing, err := repo.FindReceiptByChecksum(ctx, checksum)
		if err != nil {
			log.Fatal().Err(err).Msg("Checksum lookup failed")
		}
		if existing != nil {
			log.Info().
				Str("receipt_id", existing.ReceiptID).
				Str("checksum", checksum).
				Msg("Annotation already ingested, skipping")
			fmt.Println("Already ingested, nothing to do.")
			return
		}
	}

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting ingestion")

	result, err := pipeline.IngestReceiptFromGCS(ctx, storage, repo, *gcsURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	fmt.Printf("Ingestion completed: receipt %s, valid=%t\n", result.ReceiptID, result.Validation.IsValid)
}
