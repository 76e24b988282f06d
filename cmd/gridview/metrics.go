package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	gverrors "github.com/odvcencio/gridview/pkg/errors"
	"github.com/odvcencio/gridview/pkg/logging"
)

// newMetricsRouter serves /metrics and a liveness probe.
func newMetricsRouter(metrics http.Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Method(http.MethodGet, "/metrics", metrics)
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return router
}

// startMetricsServer listens on addr and serves metrics until the returned
// stop function is called.
func startMetricsServer(addr string, metrics http.Handler, logger *logging.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, gverrors.Wrap(err, gverrors.ErrCodeInternal, "failed to listen for metrics").
			WithContext("addr", addr)
	}

	srv := &http.Server{
		Handler:           newMetricsRouter(metrics),
		ReadHeaderTimeout: 5 * time.Second,
	}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", ln.Addr().String()))

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
		<-done
	}, nil
}
