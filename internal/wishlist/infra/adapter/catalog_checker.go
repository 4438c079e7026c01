package adapter

import (
	"context"

	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
)

type CatalogChecker struct {
	svc *catalogapp.Service
}

func NewCatalogChecker(svc *catalogapp.Service) *CatalogChecker {
	return &CatalogChecker{svc: svc}
}

func (c *CatalogChecker) Exists(ctx context.Context, productID int) bool {
	_, err := c.svc.GetProduct(ctx, productID)
	return err == nil
}
