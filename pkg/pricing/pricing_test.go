package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestLineTotal(t *testing.T) {
	cases := []struct {
		name      string
		quantity  int
		unitPrice string
		discount  string
		gst       string
		want      string
	}{
		{"discount and gst", 2, "500", "50", "18", "1121.00"},
		{"no discount no gst", 3, "100", "0", "0", "300.00"},
		{"discount exceeds base clamps to zero", 1, "100", "150", "18", "0.00"},
		{"fractional price rounds", 3, "33.335", "0", "0", "100.01"},
		{"gst on paise", 1, "99.99", "0", "5", "104.99"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := LineTotal(tc.quantity, dec(tc.unitPrice), dec(tc.discount), dec(tc.gst))
			assert.Equal(t, tc.want, got.StringFixed(2))
		})
	}
}

func TestDocumentTotal(t *testing.T) {
	got := DocumentTotal(dec("1000"), dec("100"), dec("18"))
	assert.Equal(t, "1062.00", got.StringFixed(2))

	clamped := DocumentTotal(dec("50"), dec("80"), dec("18"))
	assert.Equal(t, "0.00", clamped.StringFixed(2))
}

func TestBalanceAllowsOverpayment(t *testing.T) {
	assert.Equal(t, "900.00", Balance(dec("1000"), dec("100")).StringFixed(2))
	assert.Equal(t, "-379.00", Balance(dec("1121"), dec("1500")).StringFixed(2))
	assert.Equal(t, "0.00", Balance(dec("1121"), dec("1121")).StringFixed(2))
}
