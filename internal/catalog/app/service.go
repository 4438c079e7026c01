package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownProduct = errors.New("unknown product")
)

// FallbackPrice is what the storefront historically charged for an id missing
// from the price table.
var FallbackPrice = decimal.RequireFromString("29.99")

var icons = []string{
	"fas fa-tools",
	"fas fa-home",
	"fas fa-laptop",
	"fas fa-tshirt",
	"fas fa-shoe-prints",
	"fas fa-headphones",
	"fas fa-mobile-alt",
	"fas fa-couch",
	"fas fa-utensils",
	"fas fa-book",
}

// IconFor is the icon rule shared by the seed table and the legacy fallback.
func IconFor(id int) string {
	i := id % len(icons)
	if i < 0 {
		i += len(icons)
	}
	return icons[i]
}

type Service struct {
	repo           ProductRepo
	legacyFallback bool
	log            *slog.Logger
}

// NewService returns a catalog lookup. With legacyFallback set, unknown ids
// resolve to a placeholder product at FallbackPrice instead of failing.
func NewService(repo ProductRepo, legacyFallback bool, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		repo:           repo,
		legacyFallback: legacyFallback,
		log:            log,
	}
}

func (s *Service) GetProduct(ctx context.Context, id int) (domain.Product, error) {
	if id <= 0 {
		return domain.Product{}, fmt.Errorf("%w: product id %d", ErrInvalidInput, id)
	}

	p, err := s.repo.Get(ctx, id)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrUnknownProduct) {
		return domain.Product{}, err
	}
	if !s.legacyFallback {
		return domain.Product{}, err
	}

	s.log.Warn("unknown product, using legacy fallback", slog.Int("product_id", id))
	return domain.Product{
		ID:    id,
		Name:  fmt.Sprintf("Product %d", id),
		Price: FallbackPrice,
		Icon:  IconFor(id),
	}, nil
}

// PriceOf is total: ids without a catalog entry are priced at FallbackPrice.
func (s *Service) PriceOf(ctx context.Context, id int) decimal.Decimal {
	p, err := s.repo.Get(ctx, id)
	if err != nil {
		return FallbackPrice
	}
	return p.Price
}

// IconOf is total.
func (s *Service) IconOf(ctx context.Context, id int) string {
	p, err := s.repo.Get(ctx, id)
	if err != nil || p.Icon == "" {
		return IconFor(id)
	}
	return p.Icon
}

func (s *Service) ListProducts(ctx context.Context, f domain.Filter) ([]domain.Product, error) {
	sortBy := f.Sort
	if sortBy == "" {
		sortBy = domain.SortDefault
	}
	switch sortBy {
	case domain.SortDefault, domain.SortPriceLow, domain.SortPriceHigh, domain.SortName:
	default:
		return nil, fmt.Errorf("%w: sort %q", ErrInvalidInput, f.Sort)
	}

	all, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	category := strings.ToLower(strings.TrimSpace(f.Category))
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if category != "" && category != "all" && !strings.EqualFold(p.Category, category) {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(p.Name), query) &&
			!strings.Contains(strings.ToLower(p.Category), query) {
			continue
		}
		out = append(out, p)
	}

	switch sortBy {
	case domain.SortPriceLow:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return a.Price.Cmp(b.Price) })
	case domain.SortPriceHigh:
		slices.SortStableFunc(out, func(a, b domain.Product) int { return b.Price.Cmp(a.Price) })
	case domain.SortName:
		slices.SortStableFunc(out, func(a, b domain.Product) int {
			return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	}

	return out, nil
}
