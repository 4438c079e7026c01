package kvstorage

import "github.com/dwikikusuma/stylehub/pkg/kvstore"

const Key = "stylehub_compare"

func NewCompareStorage(kv kvstore.Store) *kvstore.IDList {
	return kvstore.NewIDList(kv, Key)
}
