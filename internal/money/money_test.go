package money

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewPanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New() with a negative value did not panic")
		}
	}()
	New(decimal.NewFromInt(-1), COP, "-1")
}

func TestAmountMarshalJSON(t *testing.T) {
	tests := []struct {
		name   string
		amount Amount
		want   string
	}{
		{
			name:   "cop integer value",
			amount: New(decimal.RequireFromString("51558"), COP, "COP 51.558,00"),
			want:   `{"amount":51558,"currency":"COP","formatted":"COP 51.558,00"}`,
		},
		{
			name:   "usd decimal value",
			amount: New(decimal.RequireFromString("1234.56"), USD, "$1,234.56"),
			want:   `{"amount":1234.56,"currency":"USD","formatted":"$1,234.56"}`,
		},
		{
			name:   "unknown currency",
			amount: New(decimal.RequireFromString("200000"), Unknown, "200.000"),
			want:   `{"amount":200000,"currency":"UNKNOWN","formatted":"200.000"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.amount)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestAmountUnmarshalJSON(t *testing.T) {
	in := `{"amount":1234.56,"currency":"USD","formatted":"$1,234.56"}`

	var got Amount
	if err := json.Unmarshal([]byte(in), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if !got.Value.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("Value = %s, want 1234.56", got.Value)
	}
	if got.Currency != USD {
		t.Errorf("Currency = %q, want %q", got.Currency, USD)
	}
	if got.Formatted != "$1,234.56" {
		t.Errorf("Formatted = %q, want %q", got.Formatted, "$1,234.56")
	}
}

func TestAmountUnmarshalJSONRejectsBadValue(t *testing.T) {
	var got Amount
	if err := json.Unmarshal([]byte(`{"amount":"nope","currency":"COP","formatted":""}`), &got); err == nil {
		t.Fatal("Unmarshal() with a non-numeric amount did not fail")
	}
}
