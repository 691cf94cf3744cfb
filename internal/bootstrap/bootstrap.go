// Package bootstrap runs a long-lived process and releases its resources on exit.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 15 * time.Second

// App owns the shutdown hooks of a process. Hooks run in reverse order of
// registration once the run function returns or a termination signal arrives.
type App struct {
	mu              sync.Mutex
	hooks           []shutdownHook
	shutdownTimeout time.Duration
}

type shutdownHook struct {
	name string
	fn   func(ctx context.Context) error
}

type Option func(*App)

func WithShutdownTimeout(d time.Duration) Option {
	return func(a *App) { a.shutdownTimeout = d }
}

func New(opts ...Option) *App {
	a := &App{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AddShutdownHook is safe to call from inside the run function.
func (a *App) AddShutdownHook(name string, fn func(ctx context.Context) error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.hooks = append(a.hooks, shutdownHook{name: name, fn: fn})
}

// Run calls run with a context cancelled on SIGINT or SIGTERM. It returns
// the error of run joined with the errors of the shutdown hooks.
func (a *App) Run(ctx context.Context, run func(ctx context.Context) error) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- run(ctx)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Default().Info("shutting down", "cause", context.Cause(ctx))
	case runErr = <-errCh:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer cancelShutdown()
	return errors.Join(runErr, a.shutdown(shutdownCtx))
}

func (a *App) shutdown(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	var errs []error
	for i := len(a.hooks) - 1; i >= 0; i-- {
		h := a.hooks[i]
		if err := h.fn(ctx); err != nil {
			errs = append(errs, fmt.Errorf("shutdown %s: %w", h.name, err))
			continue
		}
		slog.Default().Debug("shut down", "hook", h.name)
	}
	return errors.Join(errs...)
}
