// Package pricing holds the pure money math shared by invoices and
// quotations. All amounts quantize to two decimal places, rounding halves
// away from zero per currency convention.
package pricing

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// LineTotal computes a line item's total:
//
//	round(max(qty*unitPrice - discount, 0) * (1 + gst/100), 2)
//
// Negative quantity is a validation concern of the caller, not handled here.
func LineTotal(quantity int, unitPrice, discount, gstPercent decimal.Decimal) decimal.Decimal {
	base := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	discounted := base.Sub(discount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	return applyGST(discounted, gstPercent)
}

// DocumentTotal applies a document-level discount and GST to the sum of its
// line totals.
func DocumentTotal(itemTotal, discount, gstPercent decimal.Decimal) decimal.Decimal {
	discounted := itemTotal.Sub(discount)
	if discounted.IsNegative() {
		discounted = decimal.Zero
	}
	return applyGST(discounted, gstPercent)
}

// Balance is the amount still owed after the advance. It is deliberately not
// floored at zero: a negative balance represents an overpayment owed back.
func Balance(total, advance decimal.Decimal) decimal.Decimal {
	return total.Sub(advance).Round(2)
}

func applyGST(amount, gstPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Add(gstPercent.Div(hundred))
	return amount.Mul(factor).Round(2)
}
