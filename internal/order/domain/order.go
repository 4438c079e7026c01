package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/pricing"
)

const (
	IDPrefix          = "STYLE-"
	EstimatedDelivery = "3-5 business days"
)

type Order struct {
	ID                string
	Items             []OrderItem
	Totals            pricing.Totals
	Recipient         Recipient
	PaymentMethod     string
	PlacedAt          time.Time
	EstimatedDelivery string
}

type OrderItem struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
}

// Recipient is where the order ships.
type Recipient struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	Zip     string
	Country string
}

type CreateOrderRequest struct {
	ID            string
	Items         []OrderItemRequest
	Recipient     Recipient
	PaymentMethod string
}

type OrderItemRequest struct {
	ProductID int
	Name      string
	UnitPrice decimal.Decimal
	Quantity  int
}

type OrderResponse struct {
	ID                string            `json:"id"`
	Items             []OrderItemView   `json:"items"`
	Totals            pricing.Formatted `json:"totals"`
	ShipTo            string            `json:"ship_to"`
	PaymentMethod     string            `json:"payment_method"`
	PlacedAt          time.Time         `json:"placed_at"`
	EstimatedDelivery string            `json:"estimated_delivery"`
}

type OrderItemView struct {
	ProductID int    `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}
