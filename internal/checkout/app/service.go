package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dwikikusuma/stylehub/internal/checkout/domain"
	"github.com/dwikikusuma/stylehub/internal/notify"
	orderdomain "github.com/dwikikusuma/stylehub/internal/order/domain"
)

var (
	ErrSessionNotFound = errors.New("checkout session not found")
	ErrClosed          = errors.New("checkout service closed")
)

const (
	DefaultCloseDelay = 2 * time.Second

	emptyCartMessage = "Your cart is empty!"
	orderPlacedMsg   = "Order placed successfully! Thank you for your purchase."
)

// Session is a read-only copy of one checkout.
type Session struct {
	ID        string
	Wizard    domain.Wizard
	Order     *orderdomain.Order
	StartedAt time.Time
}

type session struct {
	id      string
	wizard  *domain.Wizard
	order   *orderdomain.Order
	started time.Time
	timer   *time.Timer
}

type Service struct {
	Cart   CartReader
	Orders OrderPlacer

	notifier   notify.Notifier
	log        *slog.Logger
	closeDelay time.Duration

	mu       sync.Mutex
	sessions map[string]*session
	closed   bool
}

func NewService(cart CartReader, orders OrderPlacer, notifier notify.Notifier, closeDelay time.Duration, log *slog.Logger) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if closeDelay <= 0 {
		closeDelay = DefaultCloseDelay
	}
	if log == nil {
		log = slog.Default()
	}

	return &Service{
		Cart:       cart,
		Orders:     orders,
		notifier:   notifier,
		log:        log,
		closeDelay: closeDelay,
		sessions:   make(map[string]*session),
	}
}

// Begin snapshots the cart and opens a wizard at the review stage.
func (s *Service) Begin(ctx context.Context) (Session, error) {
	items, err := s.Cart.GetCart(ctx)
	if err != nil {
		return Session{}, fmt.Errorf("read cart: %w", err)
	}

	lines := make([]domain.Line, 0, len(items))
	for _, it := range items {
		lines = append(lines, domain.Line{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
		})
	}

	w, err := domain.NewWizard(lines)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			s.notifier.Notify(ctx, emptyCartMessage, notify.Error)
		}
		return Session{}, err
	}

	sess := &session{id: uuid.NewString(), wizard: w, started: time.Now()}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return Session{}, ErrClosed
	}
	s.sessions[sess.id] = sess
	out := sess.view()
	s.mu.Unlock()

	s.log.Info("checkout started", slog.String("session_id", sess.id), slog.Int("lines", len(lines)))
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess.view(), nil
}

func (s *Service) UpdateShipping(ctx context.Context, id string, d domain.ShippingDetails) (Session, error) {
	return s.mutate(ctx, id, func(w *domain.Wizard) error { return w.SetShipping(d) })
}

func (s *Service) UpdatePayment(ctx context.Context, id string, d domain.PaymentDetails) (Session, error) {
	return s.mutate(ctx, id, func(w *domain.Wizard) error { return w.SetPayment(d) })
}

// Advance validates the current stage and moves forward. Validation failures
// are shown to the user and returned.
func (s *Service) Advance(ctx context.Context, id string) (Session, error) {
	return s.mutate(ctx, id, func(w *domain.Wizard) error {
		if err := w.Advance(); err != nil {
			return err
		}
		if w.Stage == domain.StageConfirm && w.OrderID == "" {
			w.OrderID = s.Orders.NextID()
		}
		return nil
	})
}

func (s *Service) Back(ctx context.Context, id string) (Session, error) {
	return s.mutate(ctx, id, func(w *domain.Wizard) error { return w.Back() })
}

// Cancel discards the session. The cart is left untouched. Cancelling a
// completed session closes it before its display delay runs out.
func (s *Service) Cancel(ctx context.Context, id string) error {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		if sess.timer != nil {
			sess.timer.Stop()
		}
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	s.log.Info("checkout cancelled", slog.String("session_id", id), slog.String("stage", sess.wizard.Stage.String()))
	return nil
}

// Submit places the order from the confirm stage, clears the cart and
// schedules the session for removal.
func (s *Service) Submit(ctx context.Context, id string) (Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	w := sess.wizard
	if err := w.CanComplete(); err != nil {
		s.mu.Unlock()
		return Session{}, err
	}

	order, err := s.Orders.CreateOrder(ctx, orderRequest(w))
	if err != nil {
		s.mu.Unlock()
		return Session{}, fmt.Errorf("create order: %w", err)
	}
	if err := s.Cart.ClearCart(ctx); err != nil {
		s.mu.Unlock()
		return Session{}, fmt.Errorf("clear cart: %w", err)
	}

	_ = w.Complete()
	sess.order = &order
	sess.timer = time.AfterFunc(s.closeDelay, func() { s.remove(id, sess) })
	out := sess.view()
	s.mu.Unlock()

	s.log.Info("checkout completed", slog.String("session_id", id), slog.String("order_id", order.ID))
	s.notifier.Notify(ctx, orderPlacedMsg, notify.Success)
	return out, nil
}

// Close stops pending removals and drops every session.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sess := range s.sessions {
		if sess.timer != nil {
			sess.timer.Stop()
		}
		delete(s.sessions, id)
	}
	s.closed = true
}

func (s *Service) mutate(ctx context.Context, id string, fn func(*domain.Wizard) error) (Session, error) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return Session{}, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	err := fn(sess.wizard)
	out := sess.view()
	s.mu.Unlock()

	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			s.notifier.Notify(ctx, err.Error(), notify.Error)
		}
		return out, err
	}
	return out, nil
}

// remove only deletes the session it was scheduled for.
func (s *Service) remove(id string, sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cur, ok := s.sessions[id]; ok && cur == sess {
		delete(s.sessions, id)
		s.log.Debug("checkout closed", slog.String("session_id", id))
	}
}

func (sess *session) view() Session {
	out := Session{
		ID:        sess.id,
		Wizard:    sess.wizard.Clone(),
		StartedAt: sess.started,
	}
	if sess.order != nil {
		o := *sess.order
		out.Order = &o
	}
	return out
}

func orderRequest(w *domain.Wizard) orderdomain.CreateOrderRequest {
	items := make([]orderdomain.OrderItemRequest, 0, len(w.Lines))
	for _, l := range w.Lines {
		items = append(items, orderdomain.OrderItemRequest{
			ProductID: l.ProductID,
			Name:      l.Name,
			UnitPrice: l.UnitPrice,
			Quantity:  l.Quantity,
		})
	}

	sd := w.Shipping
	return orderdomain.CreateOrderRequest{
		ID:    w.OrderID,
		Items: items,
		Recipient: orderdomain.Recipient{
			Name:    sd.Name,
			Email:   sd.Email,
			Phone:   sd.Phone,
			Address: sd.Address,
			City:    sd.City,
			Zip:     sd.Zip,
			Country: sd.Country,
		},
		PaymentMethod: w.Payment.Method,
	}
}
