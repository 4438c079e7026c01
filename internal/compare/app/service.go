package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwikikusuma/stylehub/internal/compare/domain"
	"github.com/dwikikusuma/stylehub/internal/notify"
)

var (
	ErrUnknownProduct = errors.New("unknown product")
	ErrCompareFull    = domain.ErrFull
)

type Service struct {
	storage  Storage
	products ProductChecker
	notifier notify.Notifier
	log      *slog.Logger

	mu   sync.Mutex
	list domain.List
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

// Load reads the saved compare list. Unreadable data starts an empty list.
func (s *Service) Load(ctx context.Context) {
	ids, err := s.storage.Load(ctx)
	if err != nil {
		s.log.Warn("compare load failed", slog.Any("err", err))
		ids = nil
	}

	s.mu.Lock()
	s.list.IDs = domain.Normalize(ids)
	s.mu.Unlock()
}

// Toggle adds or removes productID and reports whether it is now listed.
// A full list rejects the add with ErrCompareFull and a warning.
func (s *Service) Toggle(ctx context.Context, productID int) (bool, error) {
	if s.products != nil && !s.products.Exists(ctx, productID) {
		return false, fmt.Errorf("%w: %d", ErrUnknownProduct, productID)
	}

	s.mu.Lock()
	added, err := s.list.Toggle(productID)
	if err == nil {
		if serr := s.storage.Save(ctx, append([]int(nil), s.list.IDs...)); serr != nil {
			s.log.Error("compare save failed", slog.Any("err", serr))
		}
	}
	s.mu.Unlock()

	switch {
	case errors.Is(err, domain.ErrFull):
		s.notifier.Notify(ctx, fmt.Sprintf("You can only compare up to %d products", domain.MaxItems), notify.Warning)
		return false, fmt.Errorf("%w: %d", ErrCompareFull, productID)
	case added:
		s.notifier.Notify(ctx, "Added to compare", notify.Success)
	default:
		s.notifier.Notify(ctx, "Removed from compare", notify.Info)
	}
	return added, nil
}

func (s *Service) List() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.list.IDs...)
}
