package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseColombian interprets a numeric token under the Colombian convention:
// periods group thousands, the comma is the decimal separator. A token with
// only periods is ambiguous ("200.000" vs "5.55"); a trailing group of exactly
// three digits reads as a thousands separator, anything else is taken as
// already canonical.
func ParseColombian(s string) (decimal.Decimal, error) {
	hasPeriod := strings.Contains(s, ".")
	hasComma := strings.Contains(s, ",")

	switch {
	case hasPeriod && hasComma:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	case hasPeriod:
		if i := strings.LastIndex(s, "."); len(s)-i-1 == 3 {
			s = strings.ReplaceAll(s, ".", "")
		}
	case hasComma:
		s = strings.ReplaceAll(s, ",", ".")
	}

	return decimal.NewFromString(s)
}

// ParseUS interprets a numeric token under the US convention: commas group
// thousands, the period is the decimal separator.
func ParseUS(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

// FormatColombian renders d with period-grouped thousands and a comma decimal
// separator at a fixed number of decimal places.
func FormatColombian(d decimal.Decimal, places int32) string {
	return formatGrouped(d, places, '.', ',')
}

// FormatUS renders d with comma-grouped thousands and a period decimal
// separator at a fixed number of decimal places.
func FormatUS(d decimal.Decimal, places int32) string {
	return formatGrouped(d, places, ',', '.')
}

func formatGrouped(d decimal.Decimal, places int32, group, point byte) string {
	fixed := d.StringFixed(places)

	neg := strings.HasPrefix(fixed, "-")
	if neg {
		fixed = fixed[1:]
	}

	intPart, fracPart := fixed, ""
	if i := strings.IndexByte(fixed, '.'); i >= 0 {
		intPart, fracPart = fixed[:i], fixed[i+1:]
	}

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i := 0; i < len(intPart); i++ {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(group)
		}
		b.WriteByte(intPart[i])
	}
	if fracPart != "" {
		b.WriteByte(point)
		b.WriteString(fracPart)
	}
	return b.String()
}
