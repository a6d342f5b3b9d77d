package extract

import (
	"regexp"
	"strings"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`),
	regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
	regexp.MustCompile(`(?i)(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]* \d{1,2},? \d{4}`),
}

// Dates collects every date-shaped string in the text, verbatim and in
// pattern order. Values are not validated as calendar dates: "32/13/2025"
// passes through.
func Dates(text string) []string {
	dates := make([]string, 0, 2)
	for _, p := range datePatterns {
		dates = append(dates, p.FindAllString(text, -1)...)
	}
	return dates
}

var timePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([0-2]?\d):([0-5]\d)\s*(AM|PM|am|pm)?\b`),
	regexp.MustCompile(`a\s+las\s+([0-2]?\d):([0-5]\d)`),
}

// TimeOfDay returns the first time-of-day in the text as "H:MM", with the
// AM/PM marker appended when one was written. Empty string when the text has
// no time.
func TimeOfDay(text string) string {
	for _, p := range timePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		out := m[1] + ":" + m[2]
		if len(m) > 3 && m[3] != "" {
			out += " " + m[3]
		}
		return out
	}
	return ""
}

// Merchant patterns are case-sensitive on purpose: Colombian receipts print
// merchant names in uppercase, which is what separates them from surrounding
// prose.
var merchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`en\s+([A-Z][A-Z\s]+?)(?:\s+con\s+)`),
	regexp.MustCompile(`at\s+([A-Z][A-Z\s]+?)(?:\s|$)`),
	regexp.MustCompile(`@\s*([A-Z][A-Z\s]+?)(?:\s|$)`),
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Merchant returns the merchant name from the first pattern that matches,
// with whitespace runs collapsed to single spaces. Empty string when none
// match.
func Merchant(text string) string {
	for _, p := range merchantPatterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(whitespaceRun.ReplaceAllString(m[1], " "))
		}
	}
	return ""
}

var cardPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(T\.Cred|T\.Deb|Tarjeta)\s*\*(\d{4})`),
	regexp.MustCompile(`(?i)(Credit|Debit|Card)\s*\*(\d{4})`),
	regexp.MustCompile(`\*(\d{4})`),
}

// Card returns the card reference from the first matching pattern, or nil.
// The label decides the card type; a bare masked number stays UNKNOWN.
func Card(text string) *domain.CardInfo {
	for _, p := range cardPatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if len(m) == 2 {
			return domain.NewCardInfo(domain.CardUnknown, m[1])
		}
		return domain.NewCardInfo(cardTypeFromLabel(m[1]), m[2])
	}
	return nil
}

func cardTypeFromLabel(label string) domain.CardType {
	label = strings.ToLower(label)
	switch {
	case strings.Contains(label, "cred"):
		return domain.CardCredit
	case strings.Contains(label, "deb"):
		return domain.CardDebit
	default:
		return domain.CardUnknown
	}
}

var (
	labeledRefPattern = regexp.MustCompile(`(?i)(?:REF|REFERENCE|CONFIRMATION|TRANSACTION)\s*(?:NO|NUMBER|#)?:?\s*([A-Z0-9-]+)`)
	bareRefPattern    = regexp.MustCompile(`(?i)\b[A-Z]{2,}\d{6,}\b`)
)

// ReferenceNumbers collects labeled reference values followed by bare
// letter-digit codes. No deduplication: a value matched by both patterns
// appears twice.
func ReferenceNumbers(text string) []string {
	refs := make([]string, 0, 2)
	for _, m := range labeledRefPattern.FindAllStringSubmatch(text, -1) {
		refs = append(refs, m[1])
	}
	refs = append(refs, bareRefPattern.FindAllString(text, -1)...)
	return refs
}

var (
	maskedAccountPattern  = regexp.MustCompile(`\*{4,}(\d{4})`)
	labeledAccountPattern = regexp.MustCompile(`(?i)(?:ACCOUNT|ACCT)\s*(?:NO|NUMBER|#)?:?\s*\**(\d{4})`)
)

// AccountNumbers collects the trailing four digits of masked account
// references, then of labeled ones.
func AccountNumbers(text string) []string {
	accounts := make([]string, 0, 1)
	for _, m := range maskedAccountPattern.FindAllStringSubmatch(text, -1) {
		accounts = append(accounts, m[1])
	}
	for _, m := range labeledAccountPattern.FindAllStringSubmatch(text, -1) {
		accounts = append(accounts, m[1])
	}
	return accounts
}
