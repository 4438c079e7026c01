// Package view turns cart state into display-ready values.
package view

import (
	"sync"
	"time"

	"github.com/dwikikusuma/stylehub/internal/cart/domain"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

type CartLine struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category,omitempty"`
	Icon      string `json:"image"`
	UnitPrice string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type CartView struct {
	Items        []CartLine        `json:"items"`
	Count        int               `json:"count"`
	Empty        bool              `json:"empty"`
	FreeShipping bool              `json:"free_shipping"`
	Totals       pricing.Formatted `json:"totals"`
	RenderedAt   time.Time         `json:"rendered_at"`
}

func BuildCartView(items []domain.LineItem, totals pricing.Totals) CartView {
	lines := make([]CartLine, 0, len(items))
	count := 0
	for _, li := range items {
		count += li.Quantity
		lines = append(lines, CartLine{
			ProductID: li.ProductID,
			Name:      li.Name,
			Category:  li.Category,
			Icon:      li.Icon,
			UnitPrice: pricing.FormatMoney(li.UnitPrice),
			Quantity:  li.Quantity,
			LineTotal: pricing.FormatMoney(li.LineTotal()),
		})
	}

	return CartView{
		Items:        lines,
		Count:        count,
		Empty:        len(lines) == 0,
		FreeShipping: totals.FreeShipping(),
		Totals:       totals.Format(),
	}
}

// Board keeps the most recently rendered cart.
type Board struct {
	mu      sync.RWMutex
	cart    CartView
	renders int
	now     func() time.Time
}

func NewBoard() *Board {
	b := &Board{now: time.Now}
	b.cart = BuildCartView(nil, pricing.Calculate(nil))
	return b
}

func (b *Board) RenderCart(items []domain.LineItem, totals pricing.Totals) {
	v := BuildCartView(items, totals)

	b.mu.Lock()
	defer b.mu.Unlock()
	v.RenderedAt = b.now()
	b.cart = v
	b.renders++
}

func (b *Board) Cart() CartView {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v := b.cart
	v.Items = make([]CartLine, len(b.cart.Items))
	copy(v.Items, b.cart.Items)
	return v
}

func (b *Board) Renders() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.renders
}
