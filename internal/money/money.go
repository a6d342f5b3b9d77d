package money

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency identifies the currency a detected amount is denominated in.
type Currency string

const (
	// COP is the Colombian peso.
	COP Currency = "COP"

	// USD is the US dollar.
	USD Currency = "USD"

	// Unknown marks amounts whose currency could not be determined from the
	// surrounding text.
	Unknown Currency = "UNKNOWN"
)

// Amount is one monetary amount detected in receipt text. Value is always
// non-negative. Formatted keeps the display convention of the detection tier
// that produced the amount, so the same value can carry different renderings.
type Amount struct {
	Value     decimal.Decimal
	Currency  Currency
	Formatted string
}

// New builds an Amount. It panics when value is negative: the detection
// patterns only capture unsigned digit groups, so a negative value here is a
// logic bug, not an input condition.
func New(value decimal.Decimal, currency Currency, formatted string) Amount {
	if value.IsNegative() {
		panic(fmt.Sprintf("money: negative amount %s", value))
	}
	return Amount{Value: value, Currency: currency, Formatted: formatted}
}

type amountJSON struct {
	Amount    json.Number `json:"amount"`
	Currency  Currency    `json:"currency"`
	Formatted string      `json:"formatted"`
}

// MarshalJSON emits the value as a bare JSON number instead of the quoted
// string shopspring/decimal produces by default.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(amountJSON{
		Amount:    json.Number(a.Value.String()),
		Currency:  a.Currency,
		Formatted: a.Formatted,
	})
}

// UnmarshalJSON accepts the form MarshalJSON emits.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var raw amountJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return fmt.Errorf("money: parsing amount %q: %w", raw.Amount, err)
	}
	*a = Amount{Value: value, Currency: raw.Currency, Formatted: raw.Formatted}
	return nil
}
