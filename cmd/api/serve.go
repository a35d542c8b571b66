package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 10 * time.Second

// serve runs srv on ln until ctx is done or the server fails. It then waits
// for Shutdown to drain in-flight requests and runs cleanup in order, so the
// caller may exit as soon as serve returns.
func serve(
	ctx context.Context,
	srv *http.Server,
	ln net.Listener,
	logger *slog.Logger,
	timeout time.Duration,
	cleanup ...func(context.Context) error,
) error {
	serverErr := make(chan error, 1)
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down server")
	case err := <-serverErr:
		runErr = err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
		runErr = errors.Join(runErr, err)
	}
	for _, fn := range cleanup {
		if err := fn(shutdownCtx); err != nil {
			logger.Error("cleanup error", "error", err)
		}
	}
	return runErr
}
