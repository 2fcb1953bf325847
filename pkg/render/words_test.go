package render

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountToWords(t *testing.T) {
	cases := []struct {
		amount string
		want   string
	}{
		{"0", "Rupees Zero Only"},
		{"1", "Rupees One Only"},
		{"19", "Rupees Nineteen Only"},
		{"42", "Rupees Forty Two Only"},
		{"100", "Rupees One Hundred Only"},
		{"1121", "Rupees One Thousand One Hundred Twenty One Only"},
		{"100000", "Rupees One Lakh Only"},
		{"2550000", "Rupees Twenty Five Lakh Fifty Thousand Only"},
		{"10000000", "Rupees One Crore Only"},
		{"123456789", "Rupees Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Only"},
		{"50.25", "Rupees Fifty and Twenty Five Paise Only"},
		{"0.05", "Rupees Zero and Five Paise Only"},
		{"999999999", "Rupees Ninety Nine Crore Ninety Nine Lakh Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
	}

	for _, tc := range cases {
		t.Run(tc.amount, func(t *testing.T) {
			got := AmountToWords(decimal.RequireFromString(tc.amount))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAmountToWordsRejectsOutOfRange(t *testing.T) {
	assert.Equal(t, InvalidAmount, AmountToWords(decimal.RequireFromString("-1")))
	assert.Equal(t, InvalidAmount, AmountToWords(decimal.RequireFromString("1000000000")))
}

func TestAmountToWordsRoundsPaise(t *testing.T) {
	got := AmountToWords(decimal.RequireFromString("10.999"))
	assert.Equal(t, "Rupees Eleven Only", got)
}
