package pricing

import "github.com/shopspring/decimal"

// FormatMoney renders an amount as dollars rounded to cents, e.g. "$16.79".
func FormatMoney(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

// FormatShipping renders FREE for a zero shipping charge.
func FormatShipping(d decimal.Decimal) string {
	if d.IsZero() {
		return "FREE"
	}
	return FormatMoney(d)
}

type Formatted struct {
	Subtotal   string `json:"subtotal"`
	Shipping   string `json:"shipping"`
	Tax        string `json:"tax"`
	GrandTotal string `json:"grand_total"`
}

func (t Totals) Format() Formatted {
	return Formatted{
		Subtotal:   FormatMoney(t.Subtotal),
		Shipping:   FormatShipping(t.Shipping),
		Tax:        FormatMoney(t.Tax),
		GrandTotal: FormatMoney(t.GrandTotal),
	}
}
