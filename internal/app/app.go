package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nikolayk812/backoffice/internal/config"
	"go.uber.org/zap"
)

// Application owns the process lifecycle: signals, the HTTP server and the container.
type Application struct {
	ctx       context.Context
	cancel    context.CancelFunc
	container *Container
}

func NewApplication(ctx context.Context) (*Application, error) {
	appCtx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)

	container, err := NewContainer(appCtx)
	if err != nil {
		cancel()
		return nil, err
	}

	container.Logger().Info("application initialized", zap.String("addr", container.Config().HTTPAddr))

	return &Application{ctx: appCtx, cancel: cancel, container: container}, nil
}

// Run serves HTTP until a signal arrives or the server fails.
func (app *Application) Run() error {
	server := app.container.Server()
	errCh := make(chan error, 1)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	case <-app.ctx.Done():
		app.container.Logger().Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}

	return nil
}

func (app *Application) Shutdown() {
	if app.cancel != nil {
		app.cancel()
	}

	if app.container != nil {
		ctx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()

		app.container.Shutdown(ctx)
	}
}
