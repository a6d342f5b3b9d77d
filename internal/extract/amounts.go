package extract

import (
	"regexp"

	"github.com/jgiraldoc/receipt-parser/internal/money"
)

// Amount patterns in priority order. Explicit currency codes outrank bare $
// signs; the general Colombian form is a fallback that only applies when the
// other three found nothing.
var (
	copAmountPattern    = regexp.MustCompile(`(?i)COP\s*(\d{1,3}(?:\.\d{3})*(?:,\d{2})?)`)
	usdAmountPattern    = regexp.MustCompile(`(?i)USD\s*(\d{1,3}(?:,\d{3})*(?:\.\d{2})?)`)
	dollarAmountPattern = regexp.MustCompile(`\$\s*(\d{1,3}(?:[.,]\d{3})*(?:[.,]\d{2})?)`)
	bareAmountPattern   = regexp.MustCompile(`\d{1,3}(?:\.\d{3})+(?:,\d{2})?`)
)

// Amounts runs the tiered amount detection over the text. colombianBank
// selects the numeric locale for bare $ amounts. Every match is kept,
// duplicates included; each occurrence in the text is a separate detection.
// Candidates that fail to parse are skipped.
func Amounts(text string, colombianBank bool) []money.Amount {
	amounts := make([]money.Amount, 0, 4)

	for _, m := range copAmountPattern.FindAllStringSubmatch(text, -1) {
		value, err := money.ParseColombian(m[1])
		if err != nil {
			continue
		}
		amounts = append(amounts, money.New(value, money.COP, "COP "+money.FormatColombian(value, 2)))
	}

	for _, m := range usdAmountPattern.FindAllStringSubmatch(text, -1) {
		value, err := money.ParseUS(m[1])
		if err != nil {
			continue
		}
		amounts = append(amounts, money.New(value, money.USD, "USD "+money.FormatUS(value, 2)))
	}

	for _, m := range dollarAmountPattern.FindAllStringSubmatch(text, -1) {
		if colombianBank {
			value, err := money.ParseColombian(m[1])
			if err != nil {
				continue
			}
			amounts = append(amounts, money.New(value, money.COP, "$ "+money.FormatColombian(value, 0)))
			continue
		}
		value, err := money.ParseUS(m[1])
		if err != nil {
			continue
		}
		amounts = append(amounts, money.New(value, money.USD, "$"+money.FormatUS(value, 2)))
	}

	if len(amounts) > 0 {
		return amounts
	}

	for _, m := range bareAmountPattern.FindAllString(text, -1) {
		value, err := money.ParseColombian(m)
		if err != nil {
			continue
		}
		currency := money.Unknown
		if colombianBank {
			currency = money.COP
		}
		amounts = append(amounts, money.New(value, currency, m))
	}

	return amounts
}
