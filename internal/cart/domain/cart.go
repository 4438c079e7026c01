package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// LineItem is one product row. UnitPrice is captured from the catalog when
// the product is first added and never re-read.
type LineItem struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	Icon      string
	Category  string
}

func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Cart is an ordered list of line items, unique by ProductID.
type Cart struct {
	Items []LineItem
}

func (c *Cart) index(productID int) int {
	return slices.IndexFunc(c.Items, func(li LineItem) bool { return li.ProductID == productID })
}

// Add increments the quantity of an existing line or appends item with
// quantity 1. It returns the resulting line.
func (c *Cart) Add(item LineItem) LineItem {
	if i := c.index(item.ProductID); i >= 0 {
		c.Items[i].Quantity++
		return c.Items[i]
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
	return item
}

// Remove deletes the line for productID and reports whether one existed.
func (c *Cart) Remove(productID int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	c.Items = slices.Delete(c.Items, i, i+1)
	return true
}

// Adjust changes a line's quantity by delta. A decrease that would take the
// quantity below 1 leaves it unchanged. It reports whether the line exists.
func (c *Cart) Adjust(productID, delta int) bool {
	i := c.index(productID)
	if i < 0 {
		return false
	}
	if q := c.Items[i].Quantity + delta; q >= 1 {
		c.Items[i].Quantity = q
	}
	return true
}

func (c *Cart) Clear() {
	c.Items = nil
}

func (c *Cart) Get(productID int) (LineItem, bool) {
	if i := c.index(productID); i >= 0 {
		return c.Items[i], true
	}
	return LineItem{}, false
}

func (c *Cart) TotalQuantity() int {
	n := 0
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

func (c *Cart) Snapshot() []LineItem {
	return slices.Clone(c.Items)
}

// Normalize drops lines that break the cart invariants (non-positive id or
// quantity, negative price) and merges duplicate product ids, keeping the
// first line's metadata. It is applied to rehydrated data.
func Normalize(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	seen := make(map[int]int, len(items))
	for _, li := range items {
		if li.ProductID <= 0 || li.Quantity < 1 || li.UnitPrice.IsNegative() {
			continue
		}
		if i, ok := seen[li.ProductID]; ok {
			out[i].Quantity += li.Quantity
			continue
		}
		seen[li.ProductID] = len(out)
		out = append(out, li)
	}
	return out
}
