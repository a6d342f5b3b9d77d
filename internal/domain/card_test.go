package domain

import "testing"

func TestNewCardInfo(t *testing.T) {
	card := NewCardInfo(CardCredit, "9095")
	if card.Type != CardCredit {
		t.Errorf("Type = %q, want %q", card.Type, CardCredit)
	}
	if card.Last4 != "9095" {
		t.Errorf("Last4 = %q, want %q", card.Last4, "9095")
	}
}

func TestNewCardInfoPanicsOnMalformedLast4(t *testing.T) {
	tests := []struct {
		name  string
		last4 string
	}{
		{name: "too short", last4: "909"},
		{name: "too long", last4: "90955"},
		{name: "letters", last4: "9o95"},
		{name: "empty", last4: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("NewCardInfo(%q) did not panic", tt.last4)
				}
			}()
			NewCardInfo(CardUnknown, tt.last4)
		})
	}
}
