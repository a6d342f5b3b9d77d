package extract

import (
	"strings"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

// typeRules pair keyword sets with a transaction type, in priority order.
// The first rule with any keyword present in the lowercased text wins: a
// receipt mentioning both a purchase and a payment classifies as PURCHASE.
var typeRules = []struct {
	keywords []string
	txType   domain.TransactionType
}{
	{[]string{"compraste", "compra", "purchase"}, domain.TypePurchase},
	{[]string{"transferiste", "transferencia", "wire transfer", "wire"}, domain.TypeWireTransfer},
	{[]string{"retiraste", "retiro", "withdrawal", "withdraw", "atm"}, domain.TypeWithdrawal},
	{[]string{"depositaste", "depósito", "deposit", "deposited"}, domain.TypeDeposit},
	{[]string{"pagaste", "pago", "payment", "paid"}, domain.TypePayment},
	{[]string{"ach", "electronic transfer"}, domain.TypeACHTransfer},
}

// TransactionType classifies the receipt from Spanish and English keyword
// evidence. UNKNOWN when no keyword appears.
func TransactionType(text string) domain.TransactionType {
	lower := strings.ToLower(text)
	for _, rule := range typeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.txType
			}
		}
	}
	return domain.TypeUnknown
}
