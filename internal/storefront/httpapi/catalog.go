package httpapi

import (
	"net/http"

	"github.com/dwikikusuma/stylehub/internal/catalog/domain"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

type productView struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    string  `json:"price"`
	Display  string  `json:"display_price"`
	Icon     string  `json:"image"`
	Rating   float64 `json:"rating"`
}

func toProductView(p domain.Product) productView {
	return productView{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Price:    p.Price.StringFixed(2),
		Display:  pricing.FormatMoney(p.Price),
		Icon:     p.Icon,
		Rating:   p.Rating,
	}
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.catalog.ListProducts(r.Context(), domain.Filter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     domain.SortOrder(q.Get("sort")),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, toProductView(p))
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	p, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductView(p))
}
