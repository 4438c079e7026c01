package adapter

import (
	"context"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	checkoutapp "github.com/dwikikusuma/stylehub/internal/checkout/app"
)

type CartServiceReader struct {
	svc *cartapp.Service
}

func NewCartServiceReader(svc *cartapp.Service) *CartServiceReader {
	return &CartServiceReader{svc: svc}
}

func (r *CartServiceReader) GetCart(ctx context.Context) ([]checkoutapp.CartItem, error) {
	snapshot := r.svc.Snapshot()

	items := make([]checkoutapp.CartItem, 0, len(snapshot))
	for _, it := range snapshot {
		items = append(items, checkoutapp.CartItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}
	return items, nil
}

func (r *CartServiceReader) ClearCart(ctx context.Context) error {
	return r.svc.Clear(ctx)
}
