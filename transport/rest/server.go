package rest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const shutdownTimeout = 5 * time.Second

// NewRouter mounts the session API. live, when set, serves the websocket
// upgrade for a single session.
func NewRouter(logger *slog.Logger, games gameManager, live http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	ping := NewPingHandler()
	sessions := NewSessionHandler(logger, games)

	r.Get("/ping", ping.PingHandler)

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessions.Mount)
		r.Get("/{id}", sessions.Get)
		r.Delete("/{id}", sessions.Unmount)
		r.Post("/{id}/marks", sessions.PlaceMark)
		r.Post("/{id}/reset", sessions.Reset)

		if live != nil {
			r.Get("/{id}/live", live.ServeHTTP)
		}
	})

	return r
}

// Start serves handler on port until ctx is canceled, then shuts the server
// down gracefully.
func Start(ctx context.Context, port string, handler http.Handler) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}
