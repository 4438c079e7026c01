// Package pricing derives order totals from cart lines.
//
// Amounts are kept at full decimal precision. Rounding to cents happens only
// when a value is formatted for display.
package pricing

import "github.com/shopspring/decimal"

var (
	FreeShippingThreshold = decimal.NewFromInt(50)
	FlatShipping          = decimal.RequireFromString("5.99")
	TaxRate               = decimal.RequireFromString("0.08")
)

type Line struct {
	UnitPrice decimal.Decimal
	Quantity  int
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Totals struct {
	Subtotal   decimal.Decimal
	Shipping   decimal.Decimal
	Tax        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Calculate applies the storefront rules: free shipping strictly above 50,
// otherwise a flat fee, and a flat 8% tax on the subtotal.
func Calculate(lines []Line) Totals {
	subtotal := decimal.Zero
	for _, ln := range lines {
		subtotal = subtotal.Add(ln.Total())
	}

	shipping := FlatShipping
	if subtotal.GreaterThan(FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	tax := subtotal.Mul(TaxRate)

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		Tax:        tax,
		GrandTotal: subtotal.Add(shipping).Add(tax),
	}
}

func (t Totals) FreeShipping() bool { return t.Shipping.IsZero() }
