// Package kvstore is the durable key-value storage the storefront persists
// its client-side state into (cart, wishlist, compare list).
package kvstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("kvstore: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Unavailable fails every call with Err. It stands in for a backend that
// could not be opened so callers degrade instead of refusing to start.
type Unavailable struct {
	Err error
}

func (u Unavailable) Get(context.Context, string) ([]byte, error) { return nil, u.Err }
func (u Unavailable) Put(context.Context, string, []byte) error   { return u.Err }
func (u Unavailable) Delete(context.Context, string) error        { return u.Err }
