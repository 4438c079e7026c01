package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID       int
	Name     string
	Category string
	Price    decimal.Decimal
	Icon     string
	Rating   float64
}

type SortOrder string

const (
	SortDefault   SortOrder = "default"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
	SortName      SortOrder = "name"
)

type Filter struct {
	Category string // "" or "all" means every category
	Query    string
	Sort     SortOrder
}
