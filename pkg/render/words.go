// Package render holds the cosmetic helpers that decorate invoices: the
// amount-in-words line and the UPI payment QR code. Failures here are never
// allowed to block the financial operation being decorated; each helper
// degrades to a sentinel value instead of returning an error.
package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InvalidAmount is returned when an amount cannot be rendered as words.
const InvalidAmount = "Invalid amount"

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountToWords renders a rupee amount in the Indian numbering system, e.g.
// "Rupees One Thousand One Hundred Twenty One Only" or, with paise,
// "Rupees Fifty and Twenty Five Paise Only".
func AmountToWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return InvalidAmount
	}

	rounded := amount.Round(2)
	rupees := rounded.IntPart()
	paise := rounded.Sub(decimal.NewFromInt(rupees)).Mul(decimal.NewFromInt(100)).IntPart()

	// 99,99,99,999 is the largest amount the crore grouping covers here.
	if rupees > 999999999 {
		return InvalidAmount
	}

	rupeeWords := integerToIndianWords(rupees)
	if paise > 0 {
		return "Rupees " + rupeeWords + " and " + integerToIndianWords(paise) + " Paise Only"
	}
	return "Rupees " + rupeeWords + " Only"
}

// integerToIndianWords spells n using crore/lakh/thousand/hundred grouping.
func integerToIndianWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var parts []string
	appendGroup := func(value int64, label string) int64 {
		if q := n / value; q > 0 {
			parts = append(parts, belowThousand(q), label)
			n %= value
		}
		return n
	}

	n = appendGroup(10000000, "Crore")
	n = appendGroup(100000, "Lakh")
	n = appendGroup(1000, "Thousand")
	if n > 0 {
		parts = append(parts, belowThousand(n))
	}

	return strings.Join(parts, " ")
}

func belowThousand(n int64) string {
	var parts []string
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n >= 20 {
		parts = append(parts, tens[n/10])
		n %= 10
	}
	if n > 0 {
		parts = append(parts, ones[n])
	}
	return strings.Join(parts, " ")
}
