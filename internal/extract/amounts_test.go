package extract

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jgiraldoc/receipt-parser/internal/money"
)

type wantAmount struct {
	value     string
	currency  money.Currency
	formatted string
}

func checkAmounts(t *testing.T, got []money.Amount, want []wantAmount) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d amounts (%+v), want %d", len(got), got, len(want))
	}
	for i, w := range want {
		if !got[i].Value.Equal(decimal.RequireFromString(w.value)) {
			t.Errorf("amounts[%d].Value = %s, want %s", i, got[i].Value, w.value)
		}
		if got[i].Currency != w.currency {
			t.Errorf("amounts[%d].Currency = %q, want %q", i, got[i].Currency, w.currency)
		}
		if got[i].Formatted != w.formatted {
			t.Errorf("amounts[%d].Formatted = %q, want %q", i, got[i].Formatted, w.formatted)
		}
	}
}

func TestAmounts(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		colombianBank bool
		want          []wantAmount
	}{
		{
			name:          "explicit cop",
			text:          "Compraste COP51.558,00 en EXITO SABANETA",
			colombianBank: true,
			want:          []wantAmount{{"51558", money.COP, "COP 51.558,00"}},
		},
		{
			name:          "explicit cop lowercase with space",
			text:          "Total cop 200.000",
			colombianBank: false,
			want:          []wantAmount{{"200000", money.COP, "COP 200.000,00"}},
		},
		{
			name:          "explicit usd",
			text:          "Charged USD 1,234.56 at checkout",
			colombianBank: false,
			want:          []wantAmount{{"1234.56", money.USD, "USD 1,234.56"}},
		},
		{
			name:          "dollar with colombian bank",
			text:          "Pagaste $ 200.000 con tu tarjeta",
			colombianBank: true,
			want:          []wantAmount{{"200000", money.COP, "$ 200.000"}},
		},
		{
			name:          "dollar colombian with decimals rounds in rendering",
			text:          "Compra por $1.234,56",
			colombianBank: true,
			want:          []wantAmount{{"1234.56", money.COP, "$ 1.235"}},
		},
		{
			name:          "dollar without colombian bank",
			text:          "Purchase of $1,234.56 approved",
			colombianBank: false,
			want:          []wantAmount{{"1234.56", money.USD, "$1,234.56"}},
		},
		{
			name:          "dollar colombian token on us path collapses",
			text:          "Paid $1.234,56 today",
			colombianBank: false,
			want:          []wantAmount{{"1.23456", money.USD, "$1.23"}},
		},
		{
			name:          "dollar us comma token on colombian path drops decimals",
			text:          "Retiraste $200,000",
			colombianBank: true,
			want:          []wantAmount{{"200", money.COP, "$ 200"}},
		},
		{
			name:          "tiers accumulate",
			text:          "COP 50.000 de compra y $ 20.000 de propina",
			colombianBank: true,
			want: []wantAmount{
				{"50000", money.COP, "COP 50.000,00"},
				{"20000", money.COP, "$ 20.000"},
			},
		},
		{
			name:          "duplicates kept as separate detections",
			text:          "$ 5.000 ahora y $ 5.000 antes",
			colombianBank: true,
			want: []wantAmount{
				{"5000", money.COP, "$ 5.000"},
				{"5000", money.COP, "$ 5.000"},
			},
		},
		{
			name:          "general tier fires when nothing else matched",
			text:          "Saldo disponible 1.500.000 al cierre",
			colombianBank: false,
			want:          []wantAmount{{"1500000", money.Unknown, "1.500.000"}},
		},
		{
			name:          "general tier uses cop when a colombian bank is present",
			text:          "Saldo disponible 1.500.000 al cierre",
			colombianBank: true,
			want:          []wantAmount{{"1500000", money.COP, "1.500.000"}},
		},
		{
			name:          "general tier suppressed by an explicit match",
			text:          "COP 100 y saldo 1.500.000",
			colombianBank: true,
			want:          []wantAmount{{"100", money.COP, "COP 100,00"}},
		},
		{
			name:          "unparseable dollar candidate falls through to the general tier",
			text:          "Paid $1.234.56 today",
			colombianBank: false,
			want:          []wantAmount{{"1234", money.Unknown, "1.234"}},
		},
		{
			name: "no amounts",
			text: "Gracias por su visita",
			want: []wantAmount{},
		},
		{
			name: "empty text",
			text: "",
			want: []wantAmount{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amounts(tt.text, tt.colombianBank)
			if got == nil {
				t.Fatal("Amounts() returned nil, want non-nil slice")
			}
			checkAmounts(t, got, tt.want)
		})
	}
}
