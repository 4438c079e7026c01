package memory

import (
	"github.com/shopspring/decimal"

	"github.com/dwikikusuma/stylehub/internal/catalog/app"
	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
)

type seedRow struct {
	id       int
	name     string
	category string
	price    string
	rating   float64
}

var seed = []seedRow{
	{1, "Professional Drill", "tools", "29.99", 4.7},
	{2, "Memory Foam Mattress", "home", "49.99", 4.9},
	{3, "Gaming Laptop", "tech", "19.99", 4.8},
	{4, "Men's Casual Shirt", "clothing", "89.99", 4.5},
	{5, "Running Shoes", "shoes", "39.99", 4.8},
	{6, "Wireless Earbuds", "tech", "59.99", 4.7},
	{7, "Modern Sofa", "home", "24.99", 4.4},
	{8, "Kitchen Knife Set", "home", "34.99", 4.6},
	{9, "Bestselling Novel", "books", "44.99", 4.3},
	{10, "Cordless Screwdriver", "tools", "29.99", 4.5},
	{11, "Smart Thermostat", "home", "79.99", 4.6},
	{12, "USB-C Hub", "tech", "19.99", 4.2},
	{13, "Graphic Tee", "clothing", "14.99", 4.1},
	{14, "Hiking Boots", "shoes", "99.99", 4.7},
	{15, "Bluetooth Speaker", "tech", "49.99", 4.5},
}

// DefaultProducts is the storefront's built-in product table.
func DefaultProducts() []domain.Product {
	out := make([]domain.Product, 0, len(seed))
	for _, r := range seed {
		out = append(out, domain.Product{
			ID:       r.id,
			Name:     r.name,
			Category: r.category,
			Price:    decimal.RequireFromString(r.price),
			Icon:     app.IconFor(r.id),
			Rating:   r.rating,
		})
	}
	return out
}

func NewDefaultProductRepo() *ProductRepo {
	r, err := NewProductRepo(DefaultProducts())
	if err != nil {
		panic(err) // seed table is static
	}
	return r
}
