package app

import "context"

type Storage interface {
	Load(ctx context.Context) ([]int, error)
	Save(ctx context.Context, ids []int) error
}

type ProductChecker interface {
	Exists(ctx context.Context, productID int) bool
}
