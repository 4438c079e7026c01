package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dwikikusuma/stylehub/internal/notify"
	sfhealth "github.com/dwikikusuma/stylehub/internal/storefront/health"
	"github.com/dwikikusuma/stylehub/internal/storefront/httpapi"
	"github.com/dwikikusuma/stylehub/pkg/shutdown"
)

const (
	healthInterval = 5 * time.Second
	stopTimeout    = 10 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the storefront HTTP API and the gRPC health endpoint",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, cancel := shutdown.WithSignals(cmd.Context())
	defer cancel()

	feed := notify.NewFeed(cfg.NotificationTTL)
	defer feed.Close()

	st, err := newStack(ctx, cfg, log, notify.Multi{feed, notify.NewLogNotifier(log)})
	if err != nil {
		return err
	}
	defer st.Close()

	httpAddr := fmt.Sprintf(":%d", cfg.HTTPPort)
	httpServer := &http.Server{
		Addr: httpAddr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Catalog:     st.catalog,
			Cart:        st.cart,
			Transfer:    st.transfer,
			Checkout:    st.checkout,
			Wishlist:    st.wishlist,
			Compare:     st.compare,
			Board:       st.board,
			Feed:        feed,
			Log:         log,
			CORSOrigins: cfg.CORSOrigins,
		}),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	grpcAddr := fmt.Sprintf(":%d", cfg.GRPCPort)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		log.Error("listen failed", slog.Any("err", err), slog.String("addr", grpcAddr))
		return err
	}

	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)
	reporter := sfhealth.NewReporter(healthServer, st.cart, log)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server starting", slog.String("addr", httpAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		log.Info("grpc starting", slog.String("addr", grpcAddr))
		if err := grpcServer.Serve(lis); err != nil {
			return fmt.Errorf("grpc serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return reporter.Run(gctx, healthInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown requested")
		stop(httpServer, grpcServer)
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", slog.Any("err", err))
		return err
	}
	log.Info("bye")
	return nil
}

func stop(httpServer *http.Server, grpcServer *grpc.Server) {
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()

	if err := httpServer.Shutdown(stopCtx); err != nil {
		log.Error("http shutdown error", slog.Any("err", err))
	}

	stopped := make(chan struct{})
	go func() {
		grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-stopCtx.Done():
		log.Warn("graceful stop timeout, forcing stop")
		grpcServer.Stop()
	case <-stopped:
	}
}
