package kvstorage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dwikikusuma/stylehub/internal/cart/app"
	"github.com/dwikikusuma/stylehub/internal/cart/domain"
)

// ExportFileName is the suggested name for a downloaded cart export.
const ExportFileName = "stylehub-cart-data.json"

type exportFile struct {
	Cart      *[]record `json:"cart"`
	Timestamp string    `json:"timestamp"`
}

// ExportCodec reads and writes the portable export file:
// {"cart": [...], "timestamp": "<RFC 3339>"}. Lines use the same layout as
// the stored cart.
type ExportCodec struct{}

func (ExportCodec) Marshal(items []domain.LineItem, at time.Time) ([]byte, error) {
	records := toRecords(items)
	return json.MarshalIndent(exportFile{
		Cart:      &records,
		Timestamp: at.UTC().Format(time.RFC3339Nano),
	}, "", "  ")
}

// Unmarshal requires a cart field. The timestamp is informational only.
func (ExportCodec) Unmarshal(raw []byte) ([]domain.LineItem, error) {
	var f exportFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrMalformedSnapshot, err)
	}
	if f.Cart == nil {
		return nil, fmt.Errorf("%w: no cart in export file", app.ErrMalformedSnapshot)
	}
	return fromRecords(*f.Cart)
}
