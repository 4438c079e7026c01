package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/stylehub/internal/notify"
	"github.com/dwikikusuma/stylehub/internal/wishlist/domain"
)

var ErrUnknownProduct = errors.New("unknown product")

type Service struct {
	storage  Storage
	products ProductChecker
	notifier notify.Notifier
	log      *slog.Logger

	mu   sync.Mutex
	list domain.Wishlist
}

func NewService(storage Storage, products ProductChecker, notifier notify.Notifier, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{storage: storage, products: products, notifier: notifier, log: log}
}

// Load reads the saved wishlist. Unreadable data starts an empty list.
func (s *Service) Load(ctx context.Context) {
	ids, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn("wishlist load failed", slog.Any("err", err))
		ids = nil
	}

	s.mu.Lock()
	s.list.IDs = domain.Normalize(ids)
	s.mu.Unlock()
}

// Toggle adds or removes productID and reports whether it is now listed.
// A failed save is logged and the change kept in memory. Saves happen under
// the lock so the stored list always matches the last toggle.
func (s *Service) Toggle(ctx context.Context, productID int) (bool, error) {
	if s.products != nil && !s.products.Exists(ctx, productID) {
		return false, fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}

	s.mu.Lock()
	added := s.list.Toggle(productID)
	if err := s.storage.Save(ctx, append([]int(nil), s.list.IDs...)); err != nil {
		s.log.Error("wishlist save failed", slog.Any("err", err))
	}
	s.mu.Unlock()

	if added {
		s.notifier.Notify(ctx, "Added to wishlist", notify.Success)
	} else {
		s.notifier.Notify(ctx, "Removed from wishlist", notify.Info)
	}
	return added, nil
}

func (s *Service) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.list.IDs...)
}
