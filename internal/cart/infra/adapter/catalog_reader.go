package adapter

import (
	"context"
	"errors"
	"fmt"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
)

type CatalogServiceReader struct {
	svc *catalogapp.Service
}

func NewCatalogServiceReader(svc *catalogapp.Service) *CatalogServiceReader {
	return &CatalogServiceReader{svc: svc}
}

func (r *CatalogServiceReader) GetProduct(ctx context.Context, productID int) (cartapp.Product, error) {
	p, err := r.svc.GetProduct(ctx, productID)
	if err != nil {
		switch {
		case errors.Is(err, catalogapp.ErrUnknownProduct):
			return cartapp.Product{}, fmt.Errorf("%w: %d", cartapp.ErrUnknownProduct, productID)
		case errors.Is(err, catalogapp.ErrInvalidInput):
			return cartapp.Product{}, fmt.Errorf("%w: product id %d", cartapp.ErrInvalidInput, productID)
		}
		return cartapp.Product{}, err
	}

	return cartapp.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		Icon:     p.Icon,
		Category: p.Category,
	}, nil
}
