package domain

import (
	"fmt"
	"regexp"
)

// CardType classifies the payment card referenced on a receipt.
type CardType string

const (
	CardCredit  CardType = "CREDIT"
	CardDebit   CardType = "DEBIT"
	CardUnknown CardType = "UNKNOWN"
)

var last4Pattern = regexp.MustCompile(`^\d{4}$`)

// CardInfo is the masked card reference extracted from receipt text.
type CardInfo struct {
	Type  CardType `json:"type"`
	Last4 string   `json:"last4"`
}

// NewCardInfo builds a CardInfo. It panics unless last4 is exactly four ASCII
// digits: the card patterns only capture four-digit groups, so anything else
// is a logic bug.
func NewCardInfo(cardType CardType, last4 string) *CardInfo {
	if !last4Pattern.MatchString(last4) {
		panic(fmt.Sprintf("domain: malformed card last4 %q", last4))
	}
	return &CardInfo{Type: cardType, Last4: last4}
}
