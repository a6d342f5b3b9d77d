package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
	"github.com/jgiraldoc/receipt-parser/internal/gcs"
	infraBQ "github.com/jgiraldoc/receipt-parser/internal/infra/bigquery"
	"github.com/jgiraldoc/receipt-parser/internal/logger"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
	"github.com/jgiraldoc/receipt-parser/internal/pipeline"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.New()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "parse":
		runParse(log)
	case "annotate":
		runAnnotate(log)
	case "upload":
		runUpload(log)
	case "ingest":
		runIngest(log)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Receipt Parser CLI")
	fmt.Println("\nUsage:")
	fmt.Println("  cli <command> [options]")
	fmt.Println("\nCommands:")
	fmt.Println("  parse     Parse a local Vision annotation file and print the report")
	fmt.Println("  annotate  Run Vision OCR over a receipt image, producing annotation JSON")
	fmt.Println("  upload    Upload a receipt image or annotation to GCS")
	fmt.Println("  ingest    Parse and persist a receipt annotation already in GCS")
	fmt.Println("  help      Show this help message")
	fmt.Println("\nRun 'cli <command> -h' for more information on a command.")
}

func runParse(log zerolog.Logger) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	file := fs.String("file", "", "Path to a Vision annotation JSON file")
	fs.Parse(os.Args[2:])

	if *file == "" {
		log.Fatal().Msg("Error: --file is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read annotation file")
	}

	res, err := ocr.DecodeAnnotation(data)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to decode annotation")
	}

	tx, validation := pipeline.Process(*res)

	printReport(*file, tx, validation)

	outPath := parsedOutputPath(*file)
	out, err := json.MarshalIndent(map[string]interface{}{
		"transaction": tx,
		"validation":  validation,
	}, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal parse result")
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write parse result")
	}

	fmt.Printf("\nResult written to %s\n", outPath)
}

// parsedOutputPath builds the sibling output filename for a parsed
// annotation: receipt-001.json becomes receipt-001_parsed.json.
func parsedOutputPath(file string) string {
	ext := filepath.Ext(file)
	return strings.TrimSuffix(file, ext) + "_parsed.json"
}

func printReport(file string, tx *domain.BankTransaction, validation domain.TransactionValidation) {
	fmt.Println("\n=== Receipt Parse Report ===")
	fmt.Printf("File:       %s\n", filepath.Base(file))
	fmt.Printf("Type:       %s\n", tx.TransactionType)
	fmt.Printf("Merchant:   %s\n", orNone(tx.Merchant))
	if tx.CardInfo != nil {
		fmt.Printf("Card:       %s *%s\n", tx.CardInfo.Type, tx.CardInfo.Last4)
	} else {
		fmt.Printf("Card:       none\n")
	}
	fmt.Printf("Banks:      %s\n", joinOrNone(tx.Banks))

	fmt.Printf("Amounts (%d):\n", len(tx.Amounts))
	for i, amount := range tx.Amounts {
		fmt.Printf("  %d. %s\n", i+1, amount.Formatted)
	}

	fmt.Printf("Dates:      %s\n", joinOrNone(tx.Dates))
	fmt.Printf("Time:       %s\n", orNone(tx.Time))
	fmt.Printf("References: %s\n", joinOrNone(tx.ReferenceNumbers))
	fmt.Printf("Accounts:   %s\n", joinOrNone(tx.AccountNumbers))
	fmt.Printf("Labels:     %s\n", joinOrNone(tx.DocumentLabels))

	if validation.IsValid {
		fmt.Println("\nVerdict: VALID")
	} else {
		fmt.Println("\nVerdict: INVALID")
	}
	for _, e := range validation.Errors {
		fmt.Printf("  error: %s\n", e)
	}
	for _, warning := range validation.Warnings {
		fmt.Printf("  warning: %s\n", warning)
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	return strings.Join(values, ", ")
}

func runAnnotate(log zerolog.Logger) {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	image := fs.String("image", "", "Path to a receipt image")
	out := fs.String("out", "", "Output path for the annotation JSON (defaults to <image>.json)")
	fs.Parse(os.Args[2:])

	if *image == "" {
		log.Fatal().Msg("Error: --image is required")
	}

	if *out == "" {
		ext := filepath.Ext(*image)
		*out = strings.TrimSuffix(*image, ext) + ".json"
	}

	data, err := os.ReadFile(*image)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read image file")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	client, err := ocr.NewClient(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Vision client")
	}

	log.Info().Str("image", *image).Msg("Annotating receipt image")

	annotation, err := client.AnnotateImageRaw(ctx, data)
	if err != nil {
		log.Fatal().Err(err).Msg("Annotation failed")
	}

	if err := os.WriteFile(*out, annotation, 0o644); err != nil {
		log.Fatal().Err(err).Msg("Failed to write annotation")
	}

	fmt.Printf("Annotation written to %s\n", *out)
}

func runUpload(log zerolog.Logger) {
	fs := flag.NewFlagSet("upload", flag.ExitOnError)
	bucketName := fs.String("bucket", "", "GCS bucket name")
	objectName := fs.String("object", "", "GCS object name (defaults to filename)")
	filePath := fs.String("file", "", "Path to local file")
	fs.Parse(os.Args[2:])

	if *bucketName == "" || *filePath == "" {
		log.Fatal().Msg("Usage: cli upload -bucket NAME -file PATH")
	}

	if *objectName == "" {
		*objectName = filepath.Base(*filePath)
	}

	ctx := context.Background()
	ctx = logger.WithContext(ctx, log)

	log.Info().
		Str("bucket", *bucketName).
		Str("object", *objectName).
		Str("file", *filePath).
		Msg("Uploading file to GCS")

	if err := gcs.UploadFile(ctx, *bucketName, *objectName, *filePath); err != nil {
		log.Fatal().Err(err).Msg("Upload failed")
	}

	fmt.Printf("Uploaded %s to gs://%s/%s\n", *filePath, *bucketName, *objectName)
}

func runIngest(log zerolog.Logger) {
	fs := flag.NewFlagSet("ingest", flag.ExitOnError)
	gcsURI := fs.String("gcs-uri", "", "GCS URI of the receipt annotation JSON")
	fs.Parse(os.Args[2:])

	if *gcsURI == "" {
		log.Fatal().Msg("Error: --gcs-uri is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	repo, err := infraBQ.NewBigQueryReceiptRepository(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create receipt repository")
	}
	defer repo.Close()

	log.Info().Str("gcs_uri", *gcsURI).Msg("Starting ingestion")

	result, err := pipeline.IngestReceiptFromGCS(ctx, gcs.NewGCSStorageService(), repo, *gcsURI)
	if err != nil {
		log.Fatal().Err(err).Msg("Ingestion failed")
	}

	fmt.Printf("Ingestion completed: receipt %s, %d amount(s), valid=%t\n",
		result.ReceiptID, len(result.Transaction.Amounts), result.Validation.IsValid)
}
