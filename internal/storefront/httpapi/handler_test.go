package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	cartadapter "github.com/dwikikusuma/stylehub/internal/cart/infra/adapter"
	"github.com/dwikikusuma/stylehub/internal/cart/infra/kvstorage"
	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
	"github.com/dwikikusuma/stylehub/internal/catalog/infra/memory"
	checkoutapp "github.com/dwikikusuma/stylehub/internal/checkout/app"
	checkoutadapter "github.com/dwikikusuma/stylehub/internal/checkout/infra/adapter"
	compareapp "github.com/dwikikusuma/stylehub/internal/compare/app"
	comparestorage "github.com/dwikikusuma/stylehub/internal/compare/infra/kvstorage"
	"github.com/dwikikusuma/stylehub/internal/notify"
	orderapp "github.com/dwikikusuma/stylehub/internal/order/app"
	"github.com/dwikikusuma/stylehub/internal/storefront/view"
	wishlistapp "github.com/dwikikusuma/stylehub/internal/wishlist/app"
	wishlistadapter "github.com/dwikikusuma/stylehub/internal/wishlist/infra/adapter"
	wishliststorage "github.com/dwikikusuma/stylehub/internal/wishlist/infra/kvstorage"
	"github.com/dwikikusuma/stylehub/pkg/kvstore"
	"github.com/dwikikusuma/stylehub/pkg/logger"
)

type testServer struct {
	handler http.Handler
	cart    *cartapp.Service
	feed    *notify.Feed
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	ctx := context.Background()
	log := logger.Discard()
	kv := kvstore.NewMemory()

	feed := notify.NewFeed(time.Minute)
	t.Cleanup(feed.Close)
	board := view.NewBoard()

	catalog := catalogapp.NewService(memory.NewDefaultProductRepo(), false, log)
	cart := cartapp.NewService(cartadapter.NewCatalogServiceReader(catalog), kvstorage.NewCartStorage(kv), feed, board, log)
	cart.Load(ctx)

	wishlist := wishlistapp.NewService(wishliststorage.NewWishlistStorage(kv), wishlistadapter.NewCatalogChecker(catalog), feed, log)
	wishlist.Load(ctx)

	compare := compareapp.NewService(comparestorage.NewCompareStorage(kv), wishlistadapter.NewCatalogChecker(catalog), feed, log)
	compare.Load(ctx)

	checkout := checkoutapp.NewService(checkoutadapter.NewCartServiceReader(cart), orderapp.NewService(nil, log), feed, time.Minute, log)
	t.Cleanup(checkout.Close)

	return testServer{
		handler: NewRouter(Deps{
			Catalog:  catalog,
			Cart:     cart,
			Transfer: cartapp.NewTransfer(cart, kvstorage.ExportCodec{}),
			Checkout: checkout,
			Wishlist: wishlist,
			Compare:  compare,
			Board:    board,
			Feed:     feed,
			Log:      log,
		}),
		cart: cart,
		feed: feed,
	}
}

func (s testServer) do(t *testing.T, method, path string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)

	out := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec.Code, out
}

func errorCode(body map[string]any) string {
	e, _ := body["error"].(map[string]any)
	code, _ := e["code"].(string)
	return code
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", body["status"])
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodGet, "/api/products?sort=price-high&category=tech", nil)
	require.Equal(t, http.StatusOK, code)
	products := body["products"].([]any)
	require.NotEmpty(t, products)
	first := products[0].(map[string]any)
	assert.Equal(t, "tech", first["category"])

	code, body = s.do(t, http.MethodGet, "/api/products/3", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "19.99", body["price"])
	assert.Equal(t, "$19.99", body["display_price"])

	code, body = s.do(t, http.MethodGet, "/api/products/99", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "NOT_FOUND", errorCode(body))

	code, _ = s.do(t, http.MethodGet, "/api/products/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/products?sort=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCartFlow(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 1})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), body["count"])

	code, _ = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 1})
	require.Equal(t, http.StatusCreated, code)

	code, body = s.do(t, http.MethodPost, "/api/cart/items/1/quantity", map[string]int{"delta": -1})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(1), body["count"])

	code, body = s.do(t, http.MethodPost, "/api/cart/items/1/quantity", map[string]int{"delta": 3})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ARGUMENT", errorCode(body))

	code, body = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 404})
	assert.Equal(t, http.StatusNotFound, code)

	code, body = s.do(t, http.MethodGet, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	totals := body["totals"].(map[string]any)
	assert.Equal(t, "$29.99", totals["subtotal"])
	assert.Equal(t, "$5.99", totals["shipping"])

	code, _ = s.do(t, http.MethodDelete, "/api/cart/items/1", nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.do(t, http.MethodDelete, "/api/cart/items/1", nil)
	require.Equal(t, http.StatusOK, code, "removing twice is fine")

	code, body = s.do(t, http.MethodGet, "/api/notifications", nil)
	require.Equal(t, http.StatusOK, code)
	notes := body["notifications"].([]any)
	require.Len(t, notes, 1)
	assert.Equal(t, "Product removed from cart", notes[0].(map[string]any)["message"])

	_, _ = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 2})
	code, body = s.do(t, http.MethodDelete, "/api/cart", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["empty"])
}

func TestRejectsUnknownFields(t *testing.T) {
	s := newTestServer(t)
	code, body := s.do(t, http.MethodPost, "/api/cart/items", map[string]any{"id": 1})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "INVALID_ARGUMENT", errorCode(body))
}

func TestWishlist(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/wishlist/5", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["listed"])

	code, body = s.do(t, http.MethodGet, "/api/wishlist", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{float64(5)}, body["product_ids"])

	code, _ = s.do(t, http.MethodPost, "/api/wishlist/77", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCompare(t *testing.T) {
	s := newTestServer(t)

	for _, id := range []int{1, 2, 3} {
		code, body := s.do(t, http.MethodPost, fmt.Sprintf("/api/compare/%d", id), nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["listed"])
	}

	code, body := s.do(t, http.MethodPost, "/api/compare/4", nil)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "FAILED_PRECONDITION", errorCode(body))

	code, body = s.do(t, http.MethodGet, "/api/compare", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{float64(1), float64(2), float64(3)}, body["product_ids"])

	code, body = s.do(t, http.MethodPost, "/api/compare/2", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["listed"])

	code, _ = s.do(t, http.MethodPost, "/api/compare/77", nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestEmptyCartListsNoItems(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"items":[]`)
}

func TestCartExportImport(t *testing.T) {
	s := newTestServer(t)
	_, _ = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 3})
	_, _ = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": 3})

	req := httptest.NewRequest(http.MethodGet, "/api/cart/export", nil)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "stylehub-cart-data.json")
	exported := rec.Body.Bytes()

	var file struct {
		Cart      []map[string]any `json:"cart"`
		Timestamp string           `json:"timestamp"`
	}
	require.NoError(t, json.Unmarshal(exported, &file))
	require.Len(t, file.Cart, 1)
	assert.Equal(t, float64(2), file.Cart[0]["quantity"])
	assert.NotEmpty(t, file.Timestamp)

	_, _ = s.do(t, http.MethodDelete, "/api/cart", nil)

	code, body := s.do(t, http.MethodPost, "/api/cart/import", json.RawMessage(exported))
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, 2, s.cart.TotalItemCount())
	require.Len(t, s.feed.Active(), 1)
	assert.Equal(t, "Cart data imported successfully!", s.feed.Active()[0].Message)

	req = httptest.NewRequest(http.MethodPost, "/api/cart/import", strings.NewReader("not a cart"))
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 2, s.cart.TotalItemCount(), "bad file leaves the cart alone")
	require.Len(t, s.feed.Active(), 1)
	assert.Equal(t, "Invalid data file", s.feed.Active()[0].Message)
}

func TestCheckoutFlow(t *testing.T) {
	s := newTestServer(t)

	code, body := s.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusConflict, code, "empty cart")
	assert.Equal(t, "FAILED_PRECONDITION", errorCode(body))

	for _, id := range []int{4, 4} {
		code, _ = s.do(t, http.MethodPost, "/api/cart/items", map[string]int{"product_id": id})
		require.Equal(t, http.StatusCreated, code)
	}

	code, body = s.do(t, http.MethodPost, "/api/checkout", nil)
	require.Equal(t, http.StatusCreated, code)
	id := body["id"].(string)
	base := "/api/checkout/" + id
	assert.Equal(t, "review", body["stage_name"])

	code, _ = s.do(t, http.MethodPost, base+"/back", nil)
	assert.Equal(t, http.StatusConflict, code)

	code, body = s.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "shipping", body["stage_name"])

	ship := map[string]string{
		"name": "Ada", "email": "ada@example.com", "phone": "1", "address": "1 Way",
		"city": "London", "zip": "", "country": "UK",
	}
	code, _ = s.do(t, http.MethodPut, base+"/shipping", ship)
	require.Equal(t, http.StatusOK, code)
	code, body = s.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "zip", body["error"].(map[string]any)["field"])
	assert.Equal(t, "Please fill in Zip Code", body["error"].(map[string]any)["message"])

	ship["zip"] = "N1"
	_, _ = s.do(t, http.MethodPut, base+"/shipping", ship)
	code, _ = s.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodPut, base+"/payment", map[string]string{"method": "paypal"})
	require.Equal(t, http.StatusOK, code)
	code, body = s.do(t, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "confirm", body["stage_name"])
	assert.Regexp(t, `^STYLE-\d{5}$`, body["order_id"])

	code, body = s.do(t, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["completed"])
	order := body["order"].(map[string]any)
	assert.Equal(t, body["order_id"], order["id"])
	assert.Equal(t, "3-5 business days", order["estimated_delivery"])
	assert.Equal(t, 0, s.cart.TotalItemCount())

	code, _ = s.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodDelete, base, nil)
	assert.Equal(t, http.StatusNoContent, code)
	code, _ = s.do(t, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/cart", nil)
	req.Header.Set("Origin", "http://shop.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)
	rec := httptest.NewRecorder()

	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
