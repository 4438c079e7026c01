package app

import (
	"context"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwikikusuma/stylehub/internal/order/domain"
	"github.com/dwikikusuma/stylehub/pkg/logger"
)

type fixedIDs string

func (f fixedIDs) NextID() string { return string(f) }

func TestRandomIDsFormat(t *testing.T) {
	re := regexp.MustCompile(`^STYLE-(\d{5})$`)
	for i := 0; i < 500; i++ {
		id := RandomIDs{}.NextID()
		m := re.FindStringSubmatch(id)
		require.NotNil(t, m, "bad id %q", id)

		n, err := strconv.Atoi(m[1])
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 10000)
		assert.LessOrEqual(t, n, 99999)
	}
}

func TestCreateOrder(t *testing.T) {
	placed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(fixedIDs("STYLE-12345"), logger.Discard())
	svc.now = func() time.Time { return placed }

	req := domain.CreateOrderRequest{
		Items: []domain.OrderItemRequest{
			{ProductID: 1, Name: "Classic White Shirt", UnitPrice: decimal.RequireFromString("29.99"), Quantity: 2},
			{ProductID: 5, Name: "Leather Belt", UnitPrice: decimal.RequireFromString("10"), Quantity: 1},
		},
		Recipient:     domain.Recipient{Name: "Ada Lovelace", Address: "1 Analytical Way", City: "London", Zip: "N1", Country: "UK"},
		PaymentMethod: "card",
	}

	t.Run("builds a priced order", func(t *testing.T) {
		order, err := svc.CreateOrder(context.Background(), req)
		require.NoError(t, err)

		assert.Equal(t, "STYLE-12345", order.ID)
		assert.Equal(t, placed, order.PlacedAt)
		assert.Equal(t, domain.EstimatedDelivery, order.EstimatedDelivery)
		assert.Equal(t, "59.98", order.Items[0].LineTotal.String())
		assert.Equal(t, "69.98", order.Totals.Subtotal.String())
		assert.True(t, order.Totals.Shipping.IsZero())
	})

	t.Run("keeps a reserved id", func(t *testing.T) {
		r := req
		r.ID = "STYLE-55555"
		order, err := svc.CreateOrder(context.Background(), r)
		require.NoError(t, err)
		assert.Equal(t, "STYLE-55555", order.ID)
	})

	t.Run("confirmation view", func(t *testing.T) {
		order, err := svc.CreateOrder(context.Background(), req)
		require.NoError(t, err)

		view := Confirmation(order)
		assert.Equal(t, "Ada Lovelace, 1 Analytical Way, London N1, UK", view.ShipTo)
		assert.Equal(t, "$59.98", view.Items[0].LineTotal)
		assert.Equal(t, "FREE", view.Totals.Shipping)
		assert.Equal(t, "$75.58", view.Totals.GrandTotal)
	})
}

func TestCreateOrderRejects(t *testing.T) {
	svc := NewService(nil, logger.Discard())
	price := decimal.RequireFromString("5")

	cases := map[string][]domain.OrderItemRequest{
		"no items":       nil,
		"zero quantity":  {{ProductID: 1, UnitPrice: price, Quantity: 0}},
		"negative price": {{ProductID: 1, UnitPrice: price.Neg(), Quantity: 1}},
	}
	for name, items := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.CreateOrder(context.Background(), domain.CreateOrderRequest{Items: items})
			assert.ErrorIs(t, err, ErrInvalidOrder)
		})
	}
}

func TestNextIDUsesSource(t *testing.T) {
	svc := NewService(nil, logger.Discard())
	assert.True(t, strings.HasPrefix(svc.NextID(), domain.IDPrefix))
}
