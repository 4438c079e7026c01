package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dwikikusuma/stylehub/internal/order/domain"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

var ErrInvalidOrder = errors.New("invalid order")

type Service struct {
	ids IDSource
	now func() time.Time
	log *slog.Logger
}

func NewService(ids IDSource, log *slog.Logger) *Service {
	if ids == nil {
		ids = RandomIDs{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Service{ids: ids, now: time.Now, log: log}
}

// NextID reserves an identifier for an order about to be confirmed.
func (s *Service) NextID() string {
	return s.ids.NextID()
}

// CreateOrder prices the request and builds the confirmed order. An empty ID
// in the request gets a fresh one.
func (s *Service) CreateOrder(ctx context.Context, req domain.CreateOrderRequest) (domain.Order, error) {
	if len(req.Items) == 0 {
		return domain.Order{}, fmt.Errorf("%w: no items", ErrInvalidOrder)
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	lines := make([]pricing.Line, 0, len(req.Items))

	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return domain.Order{}, fmt.Errorf("%w: item %d: quantity must be positive, got %d", ErrInvalidOrder, i, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return domain.Order{}, fmt.Errorf("%w: item %d: unit price cannot be negative, got %s", ErrInvalidOrder, i, item.UnitPrice)
		}

		line := pricing.Line{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: line.Total(),
		})
		lines = append(lines, line)
	}

	id := req.ID
	if id == "" {
		id = s.ids.NextID()
	}

	order := domain.Order{
		ID:                id,
		Items:             items,
		Totals:            pricing.Calculate(lines),
		Recipient:         req.Recipient,
		PaymentMethod:     req.PaymentMethod,
		PlacedAt:          s.now(),
		EstimatedDelivery: domain.EstimatedDelivery,
	}

	s.log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int("lines", len(order.Items)),
		slog.String("grand_total", order.Totals.GrandTotal.String()),
	)
	return order, nil
}

// Confirmation renders an order for display.
func Confirmation(o domain.Order) domain.OrderResponse {
	items := make([]domain.OrderItemView, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, domain.OrderItemView{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			LineTotal: pricing.FormatMoney(it.LineTotal),
		})
	}

	r := o.Recipient
	shipTo := strings.Join(nonBlank(r.Name, r.Address, r.City+" "+r.Zip, r.Country), ", ")

	return domain.OrderResponse{
		ID:                o.ID,
		Items:             items,
		Totals:            o.Totals.Format(),
		ShipTo:            shipTo,
		PaymentMethod:     o.PaymentMethod,
		PlacedAt:          o.PlacedAt,
		EstimatedDelivery: o.EstimatedDelivery,
	}
}

func nonBlank(parts ...string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
