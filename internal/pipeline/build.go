package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
	"github.com/jgiraldoc/receipt-parser/internal/extract"
	"github.com/jgiraldoc/receipt-parser/internal/ocr"
)

// maxDocumentLabels caps how many Vision labels are kept on a transaction.
const maxDocumentLabels = 5

// Build runs every field extractor over the recognized text and assembles
// the transaction aggregate. Bank detection runs first because the amount
// extractor needs to know whether a Colombian bank issued the receipt.
//
// The returned transaction is complete: callers never mutate it afterwards.
func Build(res ocr.Result) *domain.BankTransaction {
	banks := extract.Banks(res.Text, res.LogoLabels)
	colombian := extract.HasColombianBank(banks)

	labels := res.Labels
	if len(labels) > maxDocumentLabels {
		labels = labels[:maxDocumentLabels]
	}
	documentLabels := make([]string, len(labels))
	copy(documentLabels, labels)

	return &domain.BankTransaction{
		ID:               uuid.NewString(),
		RawText:          res.Text,
		Amounts:          extract.Amounts(res.Text, colombian),
		Dates:            extract.Dates(res.Text),
		Time:             extract.TimeOfDay(res.Text),
		Merchant:         extract.Merchant(res.Text),
		CardInfo:         extract.Card(res.Text),
		ReferenceNumbers: extract.ReferenceNumbers(res.Text),
		AccountNumbers:   extract.AccountNumbers(res.Text),
		TransactionType:  extract.TransactionType(res.Text),
		Banks:            banks,
		DocumentLabels:   documentLabels,
		CreatedAt:        time.Now().UTC(),
	}
}
