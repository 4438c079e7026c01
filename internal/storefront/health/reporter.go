// Package health publishes storefront health over the standard gRPC health
// protocol.
package health

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const CartService = "stylehub.cart"

type DegradedSource interface {
	Degraded() bool
}

type Reporter struct {
	server *health.Server
	cart   DegradedSource
	log    *slog.Logger

	last healthpb.HealthCheckResponse_ServingStatus
}

func NewReporter(server *health.Server, cart DegradedSource, log *slog.Logger) *Reporter {
	if log == nil {
		log = slog.Default()
	}
	return &Reporter{server: server, cart: cart, log: log}
}

// Sync publishes the current status. The cart reports NOT_SERVING while its
// storage is degraded; the process itself keeps serving.
func (r *Reporter) Sync() healthpb.HealthCheckResponse_ServingStatus {
	st := healthpb.HealthCheckResponse_SERVING
	if r.cart.Degraded() {
		st = healthpb.HealthCheckResponse_NOT_SERVING
	}

	r.server.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	r.server.SetServingStatus(CartService, st)

	if st != r.last {
		r.log.Info("cart health changed", slog.String("status", st.String()))
		r.last = st
	}
	return st
}

// Run syncs every interval until ctx is done, then marks everything as
// shutting down.
func (r *Reporter) Run(ctx context.Context, interval time.Duration) error {
	t := time.NewTicker(interval)
	defer t.Stop()

	r.Sync()
	for {
		select {
		case <-ctx.Done():
			r.server.Shutdown()
			return nil
		case <-t.C:
			r.Sync()
		}
	}
}
