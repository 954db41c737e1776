// Package server wires the background vault process: it opens the
// configured key-value backend, restores the vault state from it and serves
// the dispatcher over gRPC until a termination signal arrives.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mod7ex/chrome-ext-test/internal/cryptox"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/server/config"
	"github.com/mod7ex/chrome-ext-test/internal/server/repositories/kv"
	"github.com/mod7ex/chrome-ext-test/internal/server/vault"

	gs "github.com/mod7ex/chrome-ext-test/internal/server/grpc"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	repo       kv.Repository
	store      *vault.Store
	dispatcher *vault.Dispatcher
}

// NewApp builds the process with a JSON (or text) logger on stdout.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return NewAppWithLogger(ctx, c, logging.New(os.Stdout, c.LogLevel, c.LogFormat))
}

// NewAppWithLogger opens storage and loads the persisted state. The state
// is fully restored before the returned App handles any request.
func NewAppWithLogger(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	codec, err := cryptox.New(c.Codec, c.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("codec init error: %w", err)
	}

	repo, err := kv.Open(ctx, c.StorageDriver, c.StorageDSN, c.StorageNamespace)
	if err != nil {
		return nil, fmt.Errorf("storage init error: %w", err)
	}

	store := vault.NewStore(repo, codec, logger)
	if err := store.Load(ctx); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("state restore error: %w", err)
	}

	logger.Info(ctx, "State restored",
		"driver", c.StorageDriver,
		"codec", c.Codec,
		"initialized", store.State().Initialized,
	)

	return &App{
		config:     c,
		logger:     logger,
		repo:       repo,
		store:      store,
		dispatcher: vault.NewDispatcher(store, logger),
	}, nil
}

// Dispatcher exposes the request handler for in-process callers.
func (app *App) Dispatcher() *vault.Dispatcher {
	return app.dispatcher
}

// Close releases the storage backend.
func (app *App) Close() error {
	return app.repo.Close()
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Signal received", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	s := gs.NewGRPCServer(app.config.ListenAddr, app.logger, app.dispatcher)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the storage backend.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	var (
		wg     sync.WaitGroup
		runErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		runErr = app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "failed to close storage", "error", err)
	}

	app.logger.Info(ctx, "App stopped")
	return runErr
}
