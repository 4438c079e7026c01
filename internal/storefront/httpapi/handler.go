// Package httpapi exposes the storefront as a JSON API.
package httpapi

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
	checkoutapp "github.com/dwikikusuma/stylehub/internal/checkout/app"
	compareapp "github.com/dwikikusuma/stylehub/internal/compare/app"
	"github.com/dwikikusuma/stylehub/internal/notify"
	"github.com/dwikikusuma/stylehub/internal/storefront/view"
	wishlistapp "github.com/dwikikusuma/stylehub/internal/wishlist/app"
)

type Deps struct {
	Catalog  *catalogapp.Service
	Cart     *cartapp.Service
	Transfer *cartapp.Transfer
	Checkout *checkoutapp.Service
	Wishlist *wishlistapp.Service
	Compare  *compareapp.Service
	Board    *view.Board
	Feed     *notify.Feed
	Log      *slog.Logger

	CORSOrigins []string
}

type Handler struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	transfer *cartapp.Transfer
	checkout *checkoutapp.Service
	wishlist *wishlistapp.Service
	compare  *compareapp.Service
	board    *view.Board
	feed     *notify.Feed
	log      *slog.Logger
}

func NewRouter(d Deps) http.Handler {
	h := &Handler{
		catalog:  d.Catalog,
		cart:     d.Cart,
		transfer: d.Transfer,
		checkout: d.Checkout,
		wishlist: d.Wishlist,
		compare:  d.Compare,
		board:    d.Board,
		feed:     d.Feed,
		log:      d.Log,
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.requestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", h.healthz)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.listProducts)
		r.Get("/products/{id}", h.getProduct)

		r.Get("/cart", h.getCart)
		r.Delete("/cart", h.clearCart)
		r.Post("/cart/items", h.addItem)
		r.Delete("/cart/items/{productID}", h.removeItem)
		r.Post("/cart/items/{productID}/quantity", h.changeQuantity)
		r.Get("/cart/export", h.exportCart)
		r.Post("/cart/import", h.importCart)

		r.Get("/notifications", h.notifications)

		r.Get("/wishlist", h.getWishlist)
		r.Post("/wishlist/{productID}", h.toggleWishlist)

		r.Get("/compare", h.getCompare)
		r.Post("/compare/{productID}", h.toggleCompare)

		r.Post("/checkout", h.beginCheckout)
		r.Route("/checkout/{sessionID}", func(r chi.Router) {
			r.Get("/", h.getCheckout)
			r.Delete("/", h.cancelCheckout)
			r.Put("/shipping", h.updateShipping)
			r.Put("/payment", h.updatePayment)
			r.Post("/next", h.advanceCheckout)
			r.Post("/back", h.backCheckout)
			r.Post("/submit", h.submitCheckout)
		})
	})

	origins := d.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(r)
}

func (h *Handler) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Debug("http request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("took", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	st := "ok"
	if h.cart != nil && h.cart.Degraded() {
		st = "degraded"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": st})
}

func (h *Handler) notifications(w http.ResponseWriter, r *http.Request) {
	active := []notify.Notification{}
	if h.feed != nil {
		active = append(active, h.feed.Active()...)
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": active})
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, status.Errorf(codes.InvalidArgument, "%s must be an integer, got %q", name, raw)
	}
	return n, nil
}
