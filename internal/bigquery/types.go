package bigquery

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/civil"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

// ReceiptRepository provides an interface for receipt-related database operations.
type ReceiptRepository interface {
	// InsertReceipt inserts a single ReceiptRow into the database.
	InsertReceipt(ctx context.Context, row *ReceiptRow) error

	// MarkReceiptParsed sets parse_status=PARSED, processed_ts, raw_text and checksum for a receipt.
	MarkReceiptParsed(ctx context.Context, receiptID, rawText, checksum string) error

	// MarkReceiptFailed sets parse_status=FAILED, processed_ts and error_message for a receipt.
	MarkReceiptFailed(ctx context.Context, receiptID string, cause error)

	// InsertTransaction inserts a single TransactionRow into the database.
	InsertTransaction(ctx context.Context, row *TransactionRow) error

	// ListReceipts retrieves all receipts from the database, newest upload first.
	ListReceipts(ctx context.Context) ([]*ReceiptRow, error)

	// FindReceiptByChecksum retrieves a receipt by the SHA-256 checksum of its annotation.
	FindReceiptByChecksum(ctx context.Context, checksum string) (*ReceiptRow, error)

	// QueryTransactionsByDateRange queries transactions parsed within the specified date range.
	QueryTransactionsByDateRange(ctx context.Context, startDate, endDate time.Time) ([]*TransactionRow, error)
}

// ReceiptRow represents a receipt record in BigQuery.
type ReceiptRow struct {
	ReceiptID string `bigquery:"receipt_id" json:"receipt_id"`
	UserID    string `bigquery:"user_id" json:"user_id"`
	GCSURI    string `bigquery:"gcs_uri" json:"gcs_uri"`

	SourceSystem string `bigquery:"source_system" json:"source_system"`

	UploadTS    time.Time              `bigquery:"upload_ts" json:"upload_ts"`
	ProcessedTS bigquery.NullTimestamp `bigquery:"processed_ts" json:"processed_ts,omitempty"`

	ParseStatus  string `bigquery:"parse_status" json:"parse_status"`
	ErrorMessage string `bigquery:"error_message" json:"error_message,omitempty"`

	OriginalFilename string              `bigquery:"original_filename" json:"original_filename"`
	RawText          bigquery.NullString `bigquery:"raw_text" json:"raw_text,omitempty"`

	ChecksumSHA256 string `bigquery:"checksum_sha256" json:"checksum_sha256,omitempty"`

	Metadata bigquery.NullJSON `bigquery:"metadata" json:"metadata,omitempty"`
}

// AmountRecord is one detected amount inside a transaction row. The amounts
// column is a REPEATED RECORD so every candidate the cascade found survives,
// duplicates included.
type AmountRecord struct {
	Amount    *big.Rat `bigquery:"amount" json:"amount"`
	Currency  string   `bigquery:"currency" json:"currency"`
	Formatted string   `bigquery:"formatted" json:"formatted"`
}

// MarshalJSON renders the NUMERIC amount as a fixed two-decimal string.
func (a AmountRecord) MarshalJSON() ([]byte, error) {
	type Alias AmountRecord
	return json.Marshal(&struct {
		Amount string `json:"amount"`
		*Alias
	}{
		Amount: func() string {
			if a.Amount == nil {
				return "0"
			}
			f, _ := a.Amount.Float64()
			return fmt.Sprintf("%.2f", f)
		}(),
		Alias: (*Alias)(&a),
	})
}

// TransactionRow represents a parsed receipt transaction in BigQuery.
type TransactionRow struct {
	TransactionID string `bigquery:"transaction_id" json:"transaction_id"`
	ReceiptID     string `bigquery:"receipt_id" json:"receipt_id"`
	UserID        string `bigquery:"user_id" json:"user_id"`

	// ParseDate partitions the transactions table.
	ParseDate civil.Date `bigquery:"parse_date" json:"parse_date"`

	TransactionType string `bigquery:"transaction_type" json:"transaction_type"`

	Amounts []AmountRecord `bigquery:"amounts" json:"amounts"`

	Dates     []string            `bigquery:"dates" json:"dates"`
	TimeOfDay bigquery.NullString `bigquery:"time_of_day" json:"time_of_day,omitempty"`

	Merchant bigquery.NullString `bigquery:"merchant" json:"merchant,omitempty"`

	CardType  bigquery.NullString `bigquery:"card_type" json:"card_type,omitempty"`
	CardLast4 bigquery.NullString `bigquery:"card_last4" json:"card_last4,omitempty"`

	ReferenceNumbers []string `bigquery:"reference_numbers" json:"reference_numbers"`
	AccountNumbers   []string `bigquery:"account_numbers" json:"account_numbers"`
	Banks            []string `bigquery:"banks" json:"banks"`
	DocumentLabels   []string `bigquery:"document_labels" json:"document_labels"`

	IsValid  bool     `bigquery:"is_valid" json:"is_valid"`
	Warnings []string `bigquery:"warnings" json:"warnings"`
	Errors   []string `bigquery:"errors" json:"errors"`

	RawText string `bigquery:"raw_text" json:"raw_text"`

	ParserVersion string `bigquery:"parser_version" json:"parser_version"`

	CreatedTS time.Time              `bigquery:"created_ts" json:"created_ts"`
	UpdatedTS bigquery.NullTimestamp `bigquery:"updated_ts" json:"updated_ts,omitempty"`
}

// NewTransactionRow flattens a parsed transaction and its verdict into the
// shape the transactions table expects.
func NewTransactionRow(tx *domain.BankTransaction, v domain.TransactionValidation, receiptID, userID string) *TransactionRow {
	amounts := make([]AmountRecord, 0, len(tx.Amounts))
	for _, a := range tx.Amounts {
		amounts = append(amounts, AmountRecord{
			Amount:    a.Value.Rat(),
			Currency:  string(a.Currency),
			Formatted: a.Formatted,
		})
	}

	row := &TransactionRow{
		TransactionID:    tx.ID,
		ReceiptID:        receiptID,
		UserID:           userID,
		ParseDate:        civil.DateOf(tx.CreatedAt),
		TransactionType:  string(tx.TransactionType),
		Amounts:          amounts,
		Dates:            tx.Dates,
		TimeOfDay:        nullString(tx.Time),
		Merchant:         nullString(tx.Merchant),
		ReferenceNumbers: tx.ReferenceNumbers,
		AccountNumbers:   tx.AccountNumbers,
		Banks:            tx.Banks,
		DocumentLabels:   tx.DocumentLabels,
		IsValid:          v.IsValid,
		Warnings:         v.Warnings,
		Errors:           v.Errors,
		RawText:          tx.RawText,
		CreatedTS:        tx.CreatedAt,
	}
	if tx.CardInfo != nil {
		row.CardType = nullString(string(tx.CardInfo.Type))
		row.CardLast4 = nullString(tx.CardInfo.Last4)
	}
	return row
}

func nullString(s string) bigquery.NullString {
	return bigquery.NullString{StringVal: s, Valid: s != ""}
}
