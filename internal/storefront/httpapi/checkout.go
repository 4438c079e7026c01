package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	checkoutapp "github.com/dwikikusuma/stylehub/internal/checkout/app"
	"github.com/dwikikusuma/stylehub/internal/checkout/domain"
	orderapp "github.com/dwikikusuma/stylehub/internal/order/app"
	orderdomain "github.com/dwikikusuma/stylehub/internal/order/domain"
	"github.com/dwikikusuma/stylehub/internal/pricing"
)

type checkoutLine struct {
	ProductID int    `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
}

type checkoutView struct {
	ID        string                     `json:"id"`
	Stage     int                        `json:"stage"`
	StageName string                     `json:"stage_name"`
	Lines     []checkoutLine             `json:"lines"`
	Totals    pricing.Formatted          `json:"totals"`
	Shipping  domain.ShippingDetails     `json:"shipping"`
	Payment   domain.PaymentDetails      `json:"payment"`
	OrderID   string                     `json:"order_id,omitempty"`
	Completed bool                       `json:"completed"`
	Order     *orderdomain.OrderResponse `json:"order,omitempty"`
}

func toCheckoutView(s checkoutapp.Session) checkoutView {
	w := s.Wizard
	lines := make([]checkoutLine, 0, len(w.Lines))
	for _, l := range w.Lines {
		lines = append(lines, checkoutLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			LineTotal: pricing.FormatMoney(l.Total()),
		})
	}

	v := checkoutView{
		ID:        s.ID,
		Stage:     int(w.Stage),
		StageName: w.Stage.String(),
		Lines:     lines,
		Totals:    w.Totals().Format(),
		Shipping:  w.Shipping,
		Payment:   w.Payment.Masked(),
		OrderID:   w.OrderID,
		Completed: w.Completed,
	}
	if s.Order != nil {
		conf := orderapp.Confirmation(*s.Order)
		v.Order = &conf
	}
	return v
}

func (h *Handler) beginCheckout(w http.ResponseWriter, r *http.Request) {
	sess, err := h.checkout.Begin(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCheckoutView(sess))
}

func (h *Handler) getCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r)(h.checkout.Get(r.Context(), chi.URLParam(r, "sessionID")))
}

func (h *Handler) cancelCheckout(w http.ResponseWriter, r *http.Request) {
	if err := h.checkout.Cancel(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateShipping(w http.ResponseWriter, r *http.Request) {
	var d domain.ShippingDetails
	if err := decodeJSON(w, r, &d); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondSession(w, r)(h.checkout.UpdateShipping(r.Context(), chi.URLParam(r, "sessionID"), d))
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var d domain.PaymentDetails
	if err := decodeJSON(w, r, &d); err != nil {
		h.writeError(w, r, err)
		return
	}
	h.respondSession(w, r)(h.checkout.UpdatePayment(r.Context(), chi.URLParam(r, "sessionID"), d))
}

func (h *Handler) advanceCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r)(h.checkout.Advance(r.Context(), chi.URLParam(r, "sessionID")))
}

func (h *Handler) backCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r)(h.checkout.Back(r.Context(), chi.URLParam(r, "sessionID")))
}

func (h *Handler) submitCheckout(w http.ResponseWriter, r *http.Request) {
	h.respondSession(w, r)(h.checkout.Submit(r.Context(), chi.URLParam(r, "sessionID")))
}

func (h *Handler) respondSession(w http.ResponseWriter, r *http.Request) func(checkoutapp.Session, error) {
	return func(s checkoutapp.Session, err error) {
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toCheckoutView(s))
	}
}
