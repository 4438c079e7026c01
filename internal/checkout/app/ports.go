package app

import (
	"context"

	"github.com/shopspring/decimal"

	orderdomain "github.com/dwikikusuma/stylehub/internal/order/domain"
)

type CartReader interface {
	GetCart(ctx context.Context) ([]CartItem, error)
	ClearCart(ctx context.Context) error
}

type CartItem struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type OrderPlacer interface {
	NextID() string
	CreateOrder(ctx context.Context, req orderdomain.CreateOrderRequest) (orderdomain.Order, error)
}
