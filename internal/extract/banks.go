package extract

import "strings"

// colombianBanks decides which numeric locale governs $-prefixed amounts.
// Membership is tested against exact lowercased bank names.
var colombianBanks = map[string]struct{}{
	"bancolombia":        {},
	"davivienda":         {},
	"bbva colombia":      {},
	"banco de bogotá":    {},
	"banco de occidente": {},
	"banco popular":      {},
	"banco av villas":    {},
	"banco caja social":  {},
	"bancoomeva":         {},
	"colpatria":          {},
	"itaú":               {},
}

// knownBanks is scanned against the lowercased text in this fixed order, so
// repeated runs over the same text always report banks the same way.
var knownBanks = []string{
	"Bancolombia",
	"Davivienda",
	"BBVA Colombia",
	"Banco de Bogotá",
	"Banco de Occidente",
	"Banco Popular",
	"Banco AV Villas",
	"Banco Caja Social",
	"Bancoomeva",
	"Colpatria",
	"Itaú",
	"Chase",
	"Bank of America",
	"Wells Fargo",
	"Citibank",
	"Capital One",
	"US Bank",
	"PNC",
	"TD Bank",
	"Truist",
	"Fifth Third",
	"Santander",
}

// Banks returns every bank associated with the receipt: logo detections pass
// through unmodified, then known bank names whose lowercase form occurs in
// the text. Exact duplicates collapse to their first occurrence.
func Banks(text string, logoLabels []string) []string {
	banks := make([]string, 0, len(logoLabels)+1)
	seen := make(map[string]struct{}, len(logoLabels)+1)

	add := func(name string) {
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		banks = append(banks, name)
	}

	for _, label := range logoLabels {
		add(label)
	}

	lower := strings.ToLower(text)
	for _, bank := range knownBanks {
		if strings.Contains(lower, strings.ToLower(bank)) {
			add(bank)
		}
	}

	return banks
}

// HasColombianBank reports whether any detected bank name, lowercased, is a
// Colombian institution. Matching is exact: "Bancolombia" counts, a logo
// reading "Banco Davivienda" does not.
func HasColombianBank(banks []string) bool {
	for _, bank := range banks {
		if _, ok := colombianBanks[strings.ToLower(bank)]; ok {
			return true
		}
	}
	return false
}
