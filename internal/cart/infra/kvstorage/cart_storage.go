package kvstorage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/cart/app"
	"github.com/dwikikusuma/stylehub/internal/cart/domain"
	"github.com/dwikikusuma/stylehub/pkg/kvstore"
)

const (
	Key = "stylehub_cart"

	// SchemaVersion is written into every envelope. Version 0 is the bare
	// array layout saved before envelopes existed.
	SchemaVersion = 1
)

type envelope struct {
	Version int      `json:"version"`
	Items   []record `json:"items"`
}

type record struct {
	ID       int         `json:"id"`
	Name     string      `json:"name"`
	Price    json.Number `json:"price"`
	Quantity int         `json:"quantity"`
	Image    string      `json:"image"`
	Category string      `json:"category,omitempty"`
}

type CartStorage struct {
	kv  kvstore.Store
	key string
}

func NewCartStorage(kv kvstore.Store) *CartStorage {
	return &CartStorage{kv: kv, key: Key}
}

func (s *CartStorage) Load(ctx context.Context) ([]domain.LineItem, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if errors.Is(err, kvstore.ErrNotFound) {
		return []domain.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app.ErrPersistenceUnavailable, err)
	}
	return Decode(raw)
}

func (s *CartStorage) Save(ctx context.Context, items []domain.LineItem) error {
	raw, err := Encode(items)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("%w: %v", app.ErrPersistenceUnavailable, err)
	}
	return nil
}

func Encode(items []domain.LineItem) ([]byte, error) {
	return json.Marshal(envelope{Version: SchemaVersion, Items: toRecords(items)})
}

// Decode accepts the current envelope and the legacy bare array.
func Decode(raw []byte) ([]domain.LineItem, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []domain.LineItem{}, nil
	}

	var records []record
	switch raw[0] {
	case '[':
		if err := json.Unmarshal(raw, &records); err != nil {
			return nil, fmt.Errorf("%w: %v", app.ErrMalformedSnapshot, err)
		}
	case '{':
		var env envelope
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", app.ErrMalformedSnapshot, err)
		}
		if env.Version < 1 || env.Version > SchemaVersion {
			return nil, fmt.Errorf("%w: unsupported version %d", app.ErrMalformedSnapshot, env.Version)
		}
		records = env.Items
	default:
		return nil, fmt.Errorf("%w: unexpected leading byte %q", app.ErrMalformedSnapshot, raw[0])
	}

	return fromRecords(records)
}

func toRecords(items []domain.LineItem) []record {
	out := make([]record, 0, len(items))
	for _, li := range items {
		out = append(out, record{
			ID:       li.ProductID,
			Name:     li.Name,
			Price:    json.Number(li.UnitPrice.String()),
			Quantity: li.Quantity,
			Image:    li.Icon,
			Category: li.Category,
		})
	}
	return out
}

func fromRecords(records []record) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, 0, len(records))
	for i, r := range records {
		price, err := decimal.NewFromString(r.Price.String())
		if err != nil {
			return nil, fmt.Errorf("%w: item %d price %q", app.ErrMalformedSnapshot, i, r.Price)
		}
		items = append(items, domain.LineItem{
			ProductID: r.ID,
			Name:      r.Name,
			UnitPrice: price,
			Quantity:  r.Quantity,
			Icon:      r.Image,
			Category:  r.Category,
		})
	}
	return items, nil
}
