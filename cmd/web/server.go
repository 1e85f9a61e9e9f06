package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jlahtela/ridgeline/internal/e2etest"
)

const defaultTimeout = 2 * time.Second

// configureAndStartServer configures and starts the HTTP server. It shuts
// down gracefully on SIGINT/SIGTERM or when the context is cancelled, which
// is how the test harness stops the server.
func (app *application) configureAndStartServer(ctx context.Context, addr string) error {
	var err error
	handler, err := app.routes()
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}

	shutdownComplete := make(chan struct{})
	idleTimeout := time.Minute
	srv := &http.Server{ //nolint:exhaustruct // rest of the defaults are fine.
		ErrorLog:          slog.NewLogLogger(app.logger.Handler(), slog.LevelError),
		Handler:           handler,
		IdleTimeout:       idleTimeout,
		ReadTimeout:       defaultTimeout,
		WriteTimeout:      defaultTimeout,
		ReadHeaderTimeout: time.Second,
	}
	go func() {
		sigint := make(chan os.Signal, 1)

		signal.Notify(sigint, os.Interrupt)
		signal.Notify(sigint, syscall.SIGTERM)

		select {
		case <-sigint:
		case <-ctx.Done():
		}
		app.logger.LogAttrs(ctx, slog.LevelInfo, "shutting down server")

		var shutdownContext context.Context
		var cancel context.CancelFunc
		shutdownContext, cancel = context.WithTimeout(context.Background(), defaultTimeout)
		defer cancel()
		if err = srv.Shutdown(shutdownContext); err != nil {
			err = fmt.Errorf("shutdown server: %w", err)
			app.logger.LogAttrs(ctx, slog.LevelError, "error shutting down server", slog.Any("error", err))
		}
		close(shutdownComplete)
	}()

	var listener net.Listener
	if listener, err = net.Listen("tcp", addr); err != nil {
		return fmt.Errorf("TCP listen: %w", err)
	}
	app.logger.LogAttrs(ctx, slog.LevelInfo, "starting server", slog.Any(e2etest.LogAddrKey, listener.Addr().String()))
	if err = srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server serve: %w", err)
	}
	<-shutdownComplete

	return nil
}
