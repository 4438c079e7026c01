package app

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/cart/domain"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

type Product struct {
	ID       int
	Name     string
	Price    decimal.Decimal
	Icon     string
	Category string
}

type CatalogReader interface {
	GetProduct(ctx context.Context, productID int) (Product, error)
}

// Storage persists the whole cart. Load returns an empty slice and no error
// when nothing has been saved yet.
type Storage interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}

type Renderer interface {
	RenderCart(items []domain.LineItem, totals pricing.Totals)
}

// Codec reads and writes the portable cart export file.
type Codec interface {
	Marshal(items []domain.LineItem, at time.Time) ([]byte, error)
	Unmarshal(raw []byte) ([]domain.LineItem, error)
}
