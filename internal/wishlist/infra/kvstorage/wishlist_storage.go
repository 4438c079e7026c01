package kvstorage

import "github.com/dwikikusuma/stylehub/pkg/kvstore"

const Key = "stylehub_wishlist"

// NewWishlistStorage keeps the wishlist as a JSON array of product ids.
func NewWishlistStorage(kv kvstore.Store) *kvstore.IDList {
	return kvstore.NewIDList(kv, Key)
}
