package main

import (
	"context"
	"fmt"
	"log/slog"

	cartapp "github.com/dwikikusuma/stylehub/internal/cart/app"
	cartadapter "github.com/dwikikusuma/stylehub/internal/cart/infra/adapter"
	cartstorage "github.com/dwikikusuma/stylehub/internal/cart/infra/kvstorage"
	catalogapp "github.com/dwikikusuma/stylehub/internal/catalog/app"
	"github.com/dwikikusuma/stylehub/internal/catalog/infra/memory"
	"github.com/dwikikusuma/stylehub/internal/catalog/infra/yamlfile"
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
	"github.com/dwikikusuma/stylehub/pkg/config"
	"github.com/dwikikusuma/stylehub/pkg/kvstore"
	"github.com/dwikikusuma/stylehub/pkg/sqlite"
)

// stack is every storefront service wired over one durable store.
type stack struct {
	catalog  *catalogapp.Service
	cart     *cartapp.Service
	transfer *cartapp.Transfer
	wishlist *wishlistapp.Service
	compare  *compareapp.Service
	checkout *checkoutapp.Service
	board    *view.Board

	closers []func()
}

func newStack(ctx context.Context, cfg config.Config, log *slog.Logger, notifier notify.Notifier) (*stack, error) {
	st := &stack{board: view.NewBoard()}

	kv := st.openStore(ctx, cfg, log)

	var repo catalogapp.ProductRepo = memory.NewDefaultProductRepo()
	if cfg.CatalogFile != "" {
		fileRepo, err := yamlfile.Load(cfg.CatalogFile)
		if err != nil {
			st.Close()
			return nil, fmt.Errorf("load catalog: %w", err)
		}
		repo = fileRepo
		log.Info("catalog loaded from file", slog.String("path", cfg.CatalogFile))
	}
	st.catalog = catalogapp.NewService(repo, cfg.CatalogLegacyFallback, log)

	st.cart = cartapp.NewService(cartadapter.NewCatalogServiceReader(st.catalog), cartstorage.NewCartStorage(kv), notifier, st.board, log)
	st.cart.Load(ctx)
	st.transfer = cartapp.NewTransfer(st.cart, cartstorage.ExportCodec{})

	products := wishlistadapter.NewCatalogChecker(st.catalog)
	st.wishlist = wishlistapp.NewService(wishliststorage.NewWishlistStorage(kv), products, notifier, log)
	st.wishlist.Load(ctx)
	st.compare = compareapp.NewService(comparestorage.NewCompareStorage(kv), products, notifier, log)
	st.compare.Load(ctx)

	orders := orderapp.NewService(orderapp.RandomIDs{}, log)
	st.checkout = checkoutapp.NewService(checkoutadapter.NewCartServiceReader(st.cart), orders, notifier, cfg.CheckoutCloseDelay, log)
	st.closers = append(st.closers, st.checkout.Close)

	return st, nil
}

// openStore never fails: a backend that cannot be opened is replaced by one
// that reports itself unavailable, and the cart degrades to memory.
func (st *stack) openStore(ctx context.Context, cfg config.Config, log *slog.Logger) kvstore.Store {
	switch cfg.StorageDriver {
	case "memory":
		return kvstore.NewMemory()

	case "redis":
		client := kvstore.NewRedisClient(cfg.RedisAddr)
		st.closers = append(st.closers, func() { _ = client.Close() })
		kv := kvstore.NewRedis(client, cfg.RedisPrefix)
		if err := kv.Ping(ctx); err != nil {
			log.Warn("redis unreachable, cart will run in memory until it recovers", slog.String("addr", cfg.RedisAddr), slog.Any("err", err))
		}
		return kv

	case "sqlite", "":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			log.Warn("sqlite unavailable", slog.String("path", cfg.SQLitePath), slog.Any("err", err))
			return kvstore.Unavailable{Err: err}
		}
		st.closers = append(st.closers, func() { _ = db.Close() })

		kv, err := kvstore.NewSQLite(ctx, db)
		if err != nil {
			log.Warn("sqlite schema setup failed", slog.Any("err", err))
			return kvstore.Unavailable{Err: err}
		}
		return kv

	default:
		err := fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
		log.Warn("storage disabled", slog.Any("err", err))
		return kvstore.Unavailable{Err: err}
	}
}

// Close releases resources in reverse order of acquisition.
func (st *stack) Close() {
	for i := len(st.closers) - 1; i >= 0; i-- {
		st.closers[i]()
	}
	st.closers = nil
}
