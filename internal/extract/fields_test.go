package extract

import (
	"reflect"
	"testing"

	"github.com/jgiraldoc/receipt-parser/internal/domain"
)

func TestDates(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "slash date",
			text: "Compraste el 28/10/2025 a las 20:33",
			want: []string{"28/10/2025"},
		},
		{
			name: "short year",
			text: "vence 1/5/23",
			want: []string{"1/5/23"},
		},
		{
			name: "iso date",
			text: "Processed on 2025-10-28",
			want: []string{"2025-10-28"},
		},
		{
			name: "month name with comma",
			text: "Posted October 28, 2025",
			want: []string{"October 28, 2025"},
		},
		{
			name: "month name without comma",
			text: "posted on Oct 28 2025",
			want: []string{"Oct 28 2025"},
		},
		{
			name: "pattern order not text order",
			text: "October 28, 2025 then 2025-10-28 then 28/10/2025",
			want: []string{"28/10/2025", "2025-10-28", "October 28, 2025"},
		},
		{
			name: "impossible date passes through verbatim",
			text: "fecha 32/13/2025",
			want: []string{"32/13/2025"},
		},
		{
			name: "no dates",
			text: "Gracias por su compra",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Dates(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Dates(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestTimeOfDay(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "24 hour", text: "28/10/2025 20:33", want: "20:33"},
		{name: "meridiem", text: "Posted at 3:45 PM today", want: "3:45 PM"},
		{name: "lowercase meridiem", text: "at 9:05am", want: "9:05 am"},
		{name: "spanish preposition", text: "Compraste a las 14:30", want: "14:30"},
		{name: "spanish form with glued suffix", text: "a las 14:30hrs", want: "14:30"},
		{name: "first time wins", text: "abierto 08:00 cerrado 20:00", want: "08:00"},
		{name: "no time", text: "Gracias por su compra", want: ""},
		{name: "empty", text: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeOfDay(tt.text); got != tt.want {
				t.Errorf("TimeOfDay(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestMerchant(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "spanish form keeps multi word names",
			text: "Compraste COP51.558,00 en EXITO SABANETA con T.Cred *9095",
			want: "EXITO SABANETA",
		},
		{
			name: "english form stops at the first space",
			text: "Purchase at STARBUCKS downtown",
			want: "STARBUCKS",
		},
		{
			name: "at sign form",
			text: "Paid @ CAFE",
			want: "CAFE",
		},
		{
			name: "spanish form outranks english",
			text: "en BODEGA con tarjeta at MARKET",
			want: "BODEGA",
		},
		{
			name: "internal whitespace collapses",
			text: "en EXITO   SABANETA con tarjeta",
			want: "EXITO SABANETA",
		},
		{
			name: "lowercase names never match",
			text: "compraste en exito con tarjeta",
			want: "",
		},
		{
			name: "no merchant",
			text: "COP 50.000",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Merchant(tt.text); got != tt.want {
				t.Errorf("Merchant(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestCard(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *domain.CardInfo
	}{
		{
			name: "spanish credit",
			text: "con T.Cred *9095",
			want: &domain.CardInfo{Type: domain.CardCredit, Last4: "9095"},
		},
		{
			name: "spanish debit",
			text: "con T.Deb *1234",
			want: &domain.CardInfo{Type: domain.CardDebit, Last4: "1234"},
		},
		{
			name: "tarjeta label stays unknown",
			text: "Tarjeta *5678",
			want: &domain.CardInfo{Type: domain.CardUnknown, Last4: "5678"},
		},
		{
			name: "english credit",
			text: "Credit *4321 used",
			want: &domain.CardInfo{Type: domain.CardCredit, Last4: "4321"},
		},
		{
			name: "generic card label stays unknown",
			text: "debit card *1111",
			want: &domain.CardInfo{Type: domain.CardUnknown, Last4: "1111"},
		},
		{
			name: "bare masked number",
			text: "pago con *9999",
			want: &domain.CardInfo{Type: domain.CardUnknown, Last4: "9999"},
		},
		{
			name: "spanish label outranks an earlier english one",
			text: "Card *1111 y T.Cred *2222",
			want: &domain.CardInfo{Type: domain.CardCredit, Last4: "2222"},
		},
		{
			name: "no card",
			text: "Compraste COP 50.000",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Card(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Card(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestReferenceNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "labeled reference",
			text: "REF: ABC123",
			want: []string{"ABC123"},
		},
		{
			name: "transaction number with hash",
			text: "Transaction #: 98765",
			want: []string{"98765"},
		},
		{
			name: "bare letter digit code",
			text: "Comprobante BCOL123456789 generado",
			want: []string{"BCOL123456789"},
		},
		{
			name: "value matched by both patterns appears twice",
			text: "TRANSACTION: AB1234567",
			want: []string{"AB1234567", "AB1234567"},
		},
		{
			name: "label alternation is literal left to right",
			text: "REFERENCE NO: X123",
			want: []string{"ERENCE"},
		},
		{
			name: "no references",
			text: "Compraste COP 50.000",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReferenceNumbers(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ReferenceNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestAccountNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "masked account",
			text: "Cuenta ****5678",
			want: []string{"5678"},
		},
		{
			name: "labeled account",
			text: "Account No: 4321",
			want: []string{"4321"},
		},
		{
			name: "masked then labeled",
			text: "ACCT #: 1111 y cuenta ****9999",
			want: []string{"9999", "1111"},
		},
		{
			name: "three asterisks is not a mask",
			text: "***1234",
			want: []string{},
		},
		{
			name: "no accounts",
			text: "Compraste COP 50.000",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AccountNumbers(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AccountNumbers(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
