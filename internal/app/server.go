package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"

	"github.com/chamindaf/lion-svc/internal/pkg/router"
)

// serve mounts the health endpoints, starts the HTTP server and blocks
// until the context is cancelled, then shuts down gracefully.
func (a *App) serve(ctx context.Context) error {
	a.registerHealth()

	handler := cors.New(cors.Options{
		AllowedOrigins:   a.cfg.GetArray("server.cors.allowed_origins"),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Idempotency-Key", "X-Correlation-ID"},
		AllowCredentials: true,
	}).Handler(a.router.Handler())

	srv := &http.Server{
		Addr:              a.cfg.GetString("server.addr"),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "http server listening", "addr", srv.Addr)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		a.cfg.GetSecond("server.shutdown_timeout_seconds"))
	defer cancel()

	slog.InfoContext(ctx, "shutting down http server")

	return srv.Shutdown(shutdownCtx)
}

func (a *App) registerHealth() {
	a.router.PublicEndpoint(http.MethodGet, "/", func(r *router.Request) (any, error) {
		return map[string]string{"service": a.cfg.GetString("app.name")}, nil
	})

	a.router.PublicEndpoint(http.MethodGet, "/health", func(r *router.Request) (any, error) {
		if err := a.db.Ping(r.Context()); err != nil {
			return nil, err
		}
		if err := a.redis.Ping(r.Context()).Err(); err != nil {
			return nil, err
		}

		return map[string]string{"status": "ok"}, nil
	})
}
