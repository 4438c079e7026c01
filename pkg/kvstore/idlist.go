package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// IDList stores an ordered list of product ids under one key as a JSON array.
type IDList struct {
	kv  Store
	key string
}

func NewIDList(kv Store, key string) *IDList {
	return &IDList{kv: kv, key: key}
}

// Load returns an empty list when the key has never been written.
func (l *IDList) Load(ctx context.Context) ([]int, error) {
	raw, err := l.kv.Get(ctx, l.key)
	if errors.Is(err, ErrNotFound) {
		return []int{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", l.key, err)
	}

	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode %s: %w", l.key, err)
	}
	return ids, nil
}

func (l *IDList) Save(ctx context.Context, ids []int) error {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	if err := l.kv.Put(ctx, l.key, raw); err != nil {
		return fmt.Errorf("save %s: %w", l.key, err)
	}
	return nil
}
