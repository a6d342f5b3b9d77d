package extract

import (
	"testing"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

func TestTransactionType(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.TransactionType
	}{
		{name: "spanish purchase", text: "Compraste COP 50.000 en EXITO", want: domain.TypePurchase},
		{name: "english purchase", text: "Purchase approved", want: domain.TypePurchase},
		{name: "spanish transfer", text: "Transferiste $ 100.000", want: domain.TypeWireTransfer},
		{name: "english wire", text: "Incoming wire transfer received", want: domain.TypeWireTransfer},
		{name: "spanish withdrawal", text: "Retiraste efectivo", want: domain.TypeWithdrawal},
		{name: "atm keyword", text: "Cash at ATM 5512", want: domain.TypeWithdrawal},
		{name: "spanish deposit with accent", text: "Depósito recibido", want: domain.TypeDeposit},
		{name: "english deposit", text: "Funds deposited", want: domain.TypeDeposit},
		{name: "spanish payment", text: "Pagaste tu factura", want: domain.TypePayment},
		{name: "english payment", text: "Payment confirmed", want: domain.TypePayment},
		{name: "ach transfer", text: "ACH settlement completed", want: domain.TypeACHTransfer},
		{name: "electronic transfer", text: "electronic transfer posted", want: domain.TypeACHTransfer},
		{name: "purchase outranks payment", text: "Pago por tu compra", want: domain.TypePurchase},
		{name: "keywords match as substrings", text: "wireless router order", want: domain.TypeWireTransfer},
		{name: "unrelated text", text: "Gracias por su visita", want: domain.TypeUnknown},
		{name: "empty", text: "", want: domain.TypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TransactionType(tt.text); got != tt.want {
				t.Errorf("TransactionType(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
