package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/dwikikusuma/stylehub/internal/checkout/domain"
	"github.com/dwikikusuma/stylehub/internal/notify"
	orderapp "github.com/dwikikusuma/stylehub/internal/order/app"
	"github.com/dwikikusuma/stylehub/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCart struct {
	mu       sync.Mutex
	items    []CartItem
	clears   int
	clearErr error
}

func (f *fakeCart) GetCart(context.Context) ([]CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CartItem(nil), f.items...), nil
}

func (f *fakeCart) ClearCart(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.clearErr != nil {
		return f.clearErr
	}
	f.clears++
	f.items = nil
	return nil
}

func (f *fakeCart) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, it := range f.items {
		n += it.Quantity
	}
	return n
}

type sequenceIDs struct{ n int }

func (s *sequenceIDs) NextID() string {
	s.n++
	return []string{"STYLE-10001", "STYLE-10002", "STYLE-10003"}[s.n-1]
}

type notes struct {
	mu   sync.Mutex
	msgs []notify.Notification
}

func (n *notes) Notify(_ context.Context, msg string, kind notify.Kind) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, notify.Notification{Message: msg, Kind: kind})
}

func (n *notes) last() notify.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.msgs) == 0 {
		return notify.Notification{}
	}
	return n.msgs[len(n.msgs)-1]
}

func shipping() domain.ShippingDetails {
	return domain.ShippingDetails{
		Name: "Ada Lovelace", Email: "ada@example.com", Phone: "555-0100",
		Address: "1 Analytical Way", City: "London", Zip: "N1", Country: "UK",
	}
}

func card() domain.PaymentDetails {
	return domain.PaymentDetails{Method: domain.MethodCard, CardNumber: "4242424242424242", Expiry: "12/29", CVC: "123", CardName: "Ada Lovelace"}
}

type fixture struct {
	svc   *Service
	cart  *fakeCart
	notes *notes
	ids   *sequenceIDs
}

func newFixture(t *testing.T, closeDelay time.Duration) fixture {
	t.Helper()
	f := fixture{
		cart: &fakeCart{items: []CartItem{
			{ProductID: 1, Name: "Classic White Shirt", UnitPrice: decimal.RequireFromString("30"), Quantity: 2},
		}},
		notes: &notes{},
		ids:   &sequenceIDs{},
	}
	f.svc = NewService(f.cart, orderapp.NewService(f.ids, logger.Discard()), f.notes, closeDelay, logger.Discard())
	t.Cleanup(f.svc.Close)
	return f
}

// toConfirm walks a fresh session through to the confirm stage.
func (f fixture) toConfirm(t *testing.T, ctx context.Context) Session {
	t.Helper()
	sess, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	_, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdateShipping(ctx, sess.ID, shipping())
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	_, err = f.svc.UpdatePayment(ctx, sess.ID, card())
	require.NoError(t, err)
	sess, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	require.Equal(t, domain.StageConfirm, sess.Wizard.Stage)
	return sess
}

func TestBeginEmptyCart(t *testing.T) {
	f := newFixture(t, time.Second)
	f.cart.items = nil

	sess, err := f.svc.Begin(context.Background())
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, sess.ID)
	assert.Equal(t, domain.Stage(0), sess.Wizard.Stage, "stage stays unset")
	assert.Equal(t, notify.Notification{Message: "Your cart is empty!", Kind: notify.Error}, f.notes.last())
}

func TestBeginSnapshotsCart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	sess, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StageReview, sess.Wizard.Stage)

	f.cart.mu.Lock()
	f.cart.items[0].Quantity = 5
	f.cart.mu.Unlock()

	got, err := f.svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Wizard.Lines[0].Quantity, "later cart changes are not reflected")
	assert.Equal(t, "64.8", got.Wizard.Totals().GrandTotal.String())
}

func TestAdvanceValidationNotifies(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	sess, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)

	d := shipping()
	d.City = ""
	_, err = f.svc.UpdateShipping(ctx, sess.ID, d)
	require.NoError(t, err)

	got, err := f.svc.Advance(ctx, sess.ID)
	var missing *domain.MissingFieldError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "city", missing.Field)
	assert.Equal(t, domain.StageShipping, got.Wizard.Stage)
	assert.Equal(t, notify.Error, f.notes.last().Kind)
	assert.Equal(t, "Please fill in City", f.notes.last().Message)

	_, err = f.svc.UpdateShipping(ctx, sess.ID, shipping())
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)

	bad := card()
	bad.CardNumber = "424242424242424"
	_, err = f.svc.UpdatePayment(ctx, sess.ID, bad)
	require.NoError(t, err)
	got, err = f.svc.Advance(ctx, sess.ID)
	var perr *domain.PaymentError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "card_number", perr.Field)
	assert.Equal(t, domain.StagePayment, got.Wizard.Stage)
}

func TestOrderIDReservedOnce(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	sess := f.toConfirm(t, ctx)
	assert.Equal(t, "STYLE-10001", sess.Wizard.OrderID)

	_, err := f.svc.Back(ctx, sess.ID)
	require.NoError(t, err)
	sess, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, "STYLE-10001", sess.Wizard.OrderID)
}

func TestSubmit(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 30*time.Millisecond)

	sess := f.toConfirm(t, ctx)
	done, err := f.svc.Submit(ctx, sess.ID)
	require.NoError(t, err)

	assert.True(t, done.Wizard.Completed)
	require.NotNil(t, done.Order)
	assert.Equal(t, "STYLE-10001", done.Order.ID)
	assert.Equal(t, "card", done.Order.PaymentMethod)
	assert.Equal(t, "64.8", done.Order.Totals.GrandTotal.String())
	assert.Equal(t, 0, f.cart.count(), "cart cleared on completion")
	assert.Equal(t, notify.Notification{Message: "Order placed successfully! Thank you for your purchase.", Kind: notify.Success}, f.notes.last())

	_, err = f.svc.Submit(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition, "completed sessions take no further actions")

	still, err := f.svc.Get(ctx, sess.ID)
	require.NoError(t, err, "readable until the close delay elapses")
	assert.True(t, still.Wizard.Completed)

	assert.Eventually(t, func() bool {
		_, err := f.svc.Get(ctx, sess.ID)
		return errors.Is(err, ErrSessionNotFound)
	}, time.Second, 5*time.Millisecond)
}

func TestSubmitBeforeConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	sess, err := f.svc.Begin(ctx)
	require.NoError(t, err)

	_, err = f.svc.Submit(ctx, sess.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 2, f.cart.count())
	assert.Equal(t, 0, f.ids.n, "no order id before confirm")
}

func TestSubmitClearFailureKeepsSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)
	sess := f.toConfirm(t, ctx)

	f.cart.clearErr = errors.New("boom")
	_, err := f.svc.Submit(ctx, sess.ID)
	require.Error(t, err)

	got, err := f.svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.False(t, got.Wizard.Completed)
}

func TestCancel(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	sess, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	_, err = f.svc.Advance(ctx, sess.ID)
	require.NoError(t, err)

	require.NoError(t, f.svc.Cancel(ctx, sess.ID))
	assert.Equal(t, 2, f.cart.count(), "cancel leaves the cart alone")
	assert.Equal(t, 0, f.cart.clears)

	_, err = f.svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.svc.Cancel(ctx, sess.ID), ErrSessionNotFound)
}

func TestSessionsAreIndependent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Second)

	a, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	b, err := f.svc.Begin(ctx)
	require.NoError(t, err)
	require.NotEqual(t, a.ID, b.ID)

	_, err = f.svc.Advance(ctx, a.ID)
	require.NoError(t, err)

	got, err := f.svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageReview, got.Wizard.Stage)
}

func TestClosedService(t *testing.T) {
	f := newFixture(t, time.Second)
	f.svc.Close()

	_, err := f.svc.Begin(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}
