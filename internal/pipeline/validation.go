package pipeline

import (
	"fmt"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

// maxExpectedAmounts is how many detected amounts a single receipt can carry
// before the verdict flags it for review.
const maxExpectedAmounts = 5

// Validate runs the fixed rule set over a built transaction. Every rule is
// evaluated on every call and findings keep rule order, so a caller can rely
// on message positions being stable. A transaction is valid when no rule
// reported an error; warnings never affect validity.
func Validate(tx *domain.BankTransaction) domain.TransactionValidation {
	warnings := make([]string, 0, 4)
	errs := make([]string, 0, 1)

	if len(tx.Amounts) == 0 {
		errs = append(errs, "No monetary amounts detected")
	}
	if len(tx.Dates) == 0 {
		warnings = append(warnings, "No dates detected")
	}
	if tx.TransactionType == domain.TypeUnknown {
		warnings = append(warnings, "Could not determine transaction type")
	}
	if len(tx.ReferenceNumbers) == 0 {
		warnings = append(warnings, "No reference numbers detected")
	}
	if n := len(tx.Amounts); n > maxExpectedAmounts {
		warnings = append(warnings, fmt.Sprintf("Multiple amounts detected (%d)", n))
	}

	return domain.TransactionValidation{
		IsValid:  len(errs) == 0,
		Warnings: warnings,
		Errors:   errs,
	}
}
