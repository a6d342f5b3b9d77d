package domain

import (
	"time"

	"github.com/jgiraldoc/receipt-parser/internal/money"
)

// TransactionType classifies the kind of movement a receipt describes.
type TransactionType string

const (
	TypePurchase     TransactionType = "PURCHASE"
	TypeWireTransfer TransactionType = "WIRE_TRANSFER"
	TypeWithdrawal   TransactionType = "WITHDRAWAL"
	TypeDeposit      TransactionType = "DEPOSIT"
	TypePayment      TransactionType = "PAYMENT"
	TypeACHTransfer  TransactionType = "ACH_TRANSFER"
	TypeUnknown      TransactionType = "UNKNOWN"
)

// BankTransaction is the structured aggregate extracted from one receipt.
// This is a domain struct, not a BigQuery row; the persistence layer maps it
// into the receipts dataset schema.
// Dates hold the matched strings verbatim; nothing here validates them as
// calendar dates. Collection fields are never nil so the JSON form always
// carries arrays.
type BankTransaction struct {
	ID               string          `json:"id"`
	RawText          string          `json:"raw_text"`
	Amounts          []money.Amount  `json:"amounts"`
	Dates            []string        `json:"dates"`
	Time             string          `json:"time,omitempty"`
	Merchant         string          `json:"merchant,omitempty"`
	CardInfo         *CardInfo       `json:"card_info,omitempty"`
	ReferenceNumbers []string        `json:"reference_numbers"`
	AccountNumbers   []string        `json:"account_numbers"`
	TransactionType  TransactionType `json:"transaction_type"`
	Banks            []string        `json:"banks"`
	DocumentLabels   []string        `json:"document_labels"`
	CreatedAt        time.Time       `json:"created_at"`
}
