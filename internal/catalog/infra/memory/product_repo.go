package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/dwikikusuma/stylehub/internal/catalog/app"
	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
)

// ProductRepo is a read-only product table held in memory.
type ProductRepo struct {
	byID  map[int]domain.Product
	order []int
}

func NewProductRepo(products []domain.Product) (*ProductRepo, error) {
	r := &ProductRepo{byID: make(map[int]domain.Product, len(products))}
	for _, p := range products {
		if p.ID <= 0 {
			return nil, fmt.Errorf("%w: product id %d", app.ErrInvalidInput, p.ID)
		}
		if _, dup := r.byID[p.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate product id %d", app.ErrInvalidInput, p.ID)
		}
		if p.Price.IsNegative() {
			return nil, fmt.Errorf("%w: product %d has negative price", app.ErrInvalidInput, p.ID)
		}
		if p.Icon == "" {
			p.Icon = app.IconFor(p.ID)
		}
		r.byID[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

func (r *ProductRepo) Get(ctx context.Context, id int) (domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %d", app.ErrUnknownProduct, id)
	}
	return p, nil
}

func (r *ProductRepo) List(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return slices.Clip(out), nil
}
