package yamlfile

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
	"github.com/dwikikusuma/stylehub/internal/catalog/infra/memory"
)

type file struct {
	Products []product `yaml:"products"`
}

type product struct {
	ID       int     `yaml:"id"`
	Name     string  `yaml:"name"`
	Category string  `yaml:"category"`
	Price    string  `yaml:"price"`
	Icon     string  `yaml:"icon"`
	Rating   float64 `yaml:"rating"`
}

// Load reads a product table such as
//
//	products:
//	  - id: 1
//	    name: Professional Drill
//	    category: tools
//	    price: "29.99"
func Load(path string) (*memory.ProductRepo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*memory.ProductRepo, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	products := make([]domain.Product, 0, len(f.Products))
	for i, p := range f.Products {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("product %d (entry %d): price %q: %w", p.ID, i, p.Price, err)
		}
		products = append(products, domain.Product{
			ID:       p.ID,
			Name:     p.Name,
			Category: p.Category,
			Price:    price,
			Icon:     p.Icon,
			Rating:   p.Rating,
		})
	}
	return memory.NewProductRepo(products)
}
