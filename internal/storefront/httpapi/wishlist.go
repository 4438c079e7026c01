package httpapi

import "net/http"

func (h *Handler) getWishlist(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"product_ids": h.wishlist.List()})
}

func (h *Handler) toggleWishlist(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "productID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	listed, err := h.wishlist.Toggle(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"product_id":  id,
		"listed":      listed,
		"product_ids": h.wishlist.List(),
	})
}
