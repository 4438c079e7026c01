package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/stylehub/internal/cart/domain"
	"github.com/dwikikusuma/stylehub/internal/notify"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrUnknownProduct         = errors.New("unknown product")
	ErrMalformedSnapshot      = errors.New("malformed cart snapshot")
	ErrPersistenceUnavailable = errors.New("cart storage unavailable")
)

const degradedMessage = "Cart storage is unavailable; changes will only last until you leave"

// Service is the cart store. It owns the cart and writes it through Storage
// after every mutation. When storage fails it keeps working in memory and
// warns the user once.
type Service struct {
	catalog  CatalogReader
	storage  Storage
	notifier notify.Notifier
	renderer Renderer
	log      *slog.Logger

	mu       sync.Mutex
	cart     domain.Cart
	degraded bool
}

func NewService(catalog CatalogReader, storage Storage, notifier notify.Notifier, renderer Renderer, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		catalog:  catalog,
		storage:  storage,
		notifier: notifier,
		renderer: renderer,
		log:      log,
	}
}

// Load rehydrates the cart from storage. Missing or malformed data yields an
// empty cart; an unreachable storage switches the store to in-memory mode.
// Load never fails.
func (s *Service) Load(ctx context.Context) {
	items, err := s.storage.Load(ctx)

	s.mu.Lock()
	switch {
	case err == nil:
		s.cart.Items = domain.Normalize(items)
		s.log.Info("cart loaded", slog.Int("lines", len(s.cart.Items)))
	case errors.Is(err, ErrMalformedSnapshot):
		s.cart.Items = nil
		s.log.Warn("discarding malformed cart snapshot", slog.Any("err", err))
	default:
		s.cart.Items = nil
		s.degraded = true
		s.log.Warn("cart storage unavailable on load", slog.Any("err", err))
	}
	degraded := s.degraded
	s.render(s.cart.Snapshot())
	s.mu.Unlock()

	s.warnIf(ctx, degraded)
}

// Add puts one unit of productID into the cart.
func (s *Service) Add(ctx context.Context, productID int) (domain.LineItem, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		if errors.Is(err, ErrUnknownProduct) || errors.Is(err, ErrInvalidInput) {
			s.notifier.Notify(ctx, fmt.Sprintf("Product %d is not available", productID), notify.Error)
		}
		return domain.LineItem{}, err
	}

	s.mu.Lock()
	line := s.cart.Add(domain.LineItem{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		Icon:      p.Icon,
		Category:  p.Category,
	})
	items, warn := s.persistLocked(ctx)
	s.render(items)
	s.mu.Unlock()

	s.log.Debug("cart add", slog.Int("product_id", productID), slog.Int("quantity", line.Quantity))
	s.notifier.Notify(ctx, fmt.Sprintf("%s added to cart!", line.Name), notify.Success)
	s.warnIf(ctx, warn)
	return line, nil
}

// Remove deletes the line for productID. Removing an absent product is not
// an error.
func (s *Service) Remove(ctx context.Context, productID int) error {
	s.mu.Lock()
	removed := s.cart.Remove(productID)
	items, warn := s.persistLocked(ctx)
	s.render(items)
	s.mu.Unlock()

	s.log.Debug("cart remove", slog.Int("product_id", productID), slog.Bool("removed", removed))
	s.notifier.Notify(ctx, "Product removed from cart", notify.Info)
	s.warnIf(ctx, warn)
	return nil
}

// SetQuantity moves a line's quantity by delta (+1 or -1). Quantity never
// drops below 1 and an absent product is left alone.
func (s *Service) SetQuantity(ctx context.Context, productID, delta int) error {
	if delta != 1 && delta != -1 {
		return fmt.Errorf("%w: quantity delta must be +1 or -1, got %d", ErrInvalidInput, delta)
	}

	s.mu.Lock()
	if !s.cart.Adjust(productID, delta) {
		s.mu.Unlock()
		return nil
	}
	items, warn := s.persistLocked(ctx)
	s.render(items)
	s.mu.Unlock()

	s.warnIf(ctx, warn)
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cart.Clear()
	items, warn := s.persistLocked(ctx)
	s.render(items)
	s.mu.Unlock()

	s.notifier.Notify(ctx, "Cart cleared!", notify.Info)
	s.warnIf(ctx, warn)
	return nil
}

// Replace swaps the whole cart for items, as when importing a saved file.
// Invalid lines are dropped and repeated products merged.
func (s *Service) Replace(ctx context.Context, items []domain.LineItem) error {
	s.mu.Lock()
	s.cart.Items = domain.Normalize(items)
	saved, warn := s.persistLocked(ctx)
	s.render(saved)
	s.mu.Unlock()

	s.log.Info("cart replaced", slog.Int("lines", len(saved)))
	s.notifier.Notify(ctx, "Cart data imported successfully!", notify.Success)
	s.warnIf(ctx, warn)
	return nil
}

func (s *Service) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.TotalQuantity()
}

// Snapshot returns a copy of the current line items.
func (s *Service) Snapshot() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Snapshot()
}

func (s *Service) Totals() pricing.Totals {
	return pricing.Calculate(Lines(s.Snapshot()))
}

// Degraded reports whether the last storage access failed.
func (s *Service) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// Lines maps cart items onto pricing lines.
func Lines(items []domain.LineItem) []pricing.Line {
	out := make([]pricing.Line, 0, len(items))
	for _, li := range items {
		out = append(out, pricing.Line{UnitPrice: li.UnitPrice, Quantity: li.Quantity})
	}
	return out
}

// persistLocked saves the cart and returns the saved snapshot. warn is true
// when this save moved the store into degraded mode. Callers hold s.mu.
func (s *Service) persistLocked(ctx context.Context) (items []domain.LineItem, warn bool) {
	items = s.cart.Snapshot()

	if err := s.storage.Save(ctx, items); err != nil {
		s.log.Error("cart save failed", slog.Any("err", err))
		if !s.degraded {
			s.degraded = true
			return items, true
		}
		return items, false
	}

	if s.degraded {
		s.degraded = false
		s.log.Info("cart storage recovered")
	}
	return items, false
}

// warnIf is called after the operation's own message so the warning is the
// one left on screen.
func (s *Service) warnIf(ctx context.Context, warn bool) {
	if warn {
		s.notifier.Notify(ctx, degradedMessage, notify.Warning)
	}
}

// render runs under s.mu so views arrive in mutation order. Renderers must
// not call back into the store.
func (s *Service) render(items []domain.LineItem) {
	if s.renderer == nil {
		return
	}
	s.renderer.RenderCart(items, pricing.Calculate(Lines(items)))
}
