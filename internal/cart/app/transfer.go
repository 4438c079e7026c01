package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwikikusuma/stylehub/internal/notify"
)

// Transfer moves the cart in and out of export files.
type Transfer struct {
	cart  *Service
	codec Codec
	now   func() time.Time
}

func NewTransfer(cart *Service, codec Codec) *Transfer {
	return &Transfer{cart: cart, codec: codec, now: time.Now}
}

// Export writes the current cart stamped with the export time.
func (t *Transfer) Export(ctx context.Context) ([]byte, error) {
	raw, err := t.codec.Marshal(t.cart.Snapshot(), t.now())
	if err != nil {
		return nil, fmt.Errorf("export cart: %w", err)
	}
	t.cart.log.DebugContext(ctx, "cart exported", slog.Int("bytes", len(raw)))
	return raw, nil
}

// Import replaces the cart with the one in raw. A file that cannot be read
// leaves the cart untouched and returns ErrMalformedSnapshot.
func (t *Transfer) Import(ctx context.Context, raw []byte) error {
	items, err := t.codec.Unmarshal(raw)
	if err != nil {
		t.cart.log.Warn("cart import rejected", slog.Any("err", err))
		t.cart.notifier.Notify(ctx, "Invalid data file", notify.Error)
		return err
	}
	return t.cart.Replace(ctx, items)
}
