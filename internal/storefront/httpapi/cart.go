package httpapi

import (
	"io"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/dwikikusuma/stylehub/internal/cart/infra/kvstorage"
)

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.board.Cart())
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if _, err := h.cart.Add(r.Context(), req.ProductID); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.board.Cart())
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "productID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.cart.Remove(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.board.Cart())
}

func (h *Handler) changeQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "productID")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req quantityRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	if err := h.cart.SetQuantity(r.Context(), id, req.Delta); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.board.Cart())
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.cart.Clear(r.Context()); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.board.Cart())
}

func (h *Handler) exportCart(w http.ResponseWriter, r *http.Request) {
	raw, err := h.transfer.Export(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+kvstorage.ExportFileName+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(raw)
}

// importCart takes an export file as the request body.
func (h *Handler) importCart(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		h.writeError(w, r, status.Errorf(codes.InvalidArgument, "invalid request body: %v", err))
		return
	}

	if err := h.transfer.Import(r.Context(), raw); err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.board.Cart())
}
