// Package popup wires the popup process: it connects to the background (or
// runs the store in-process in embedded mode), builds the controller and
// hands it to the configured renderer.
package popup

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mod7ex/chrome-ext-test/internal/client/cli"
	"github.com/mod7ex/chrome-ext-test/internal/client/client"
	"github.com/mod7ex/chrome-ext-test/internal/client/config"
	"github.com/mod7ex/chrome-ext-test/internal/client/controller"
	"github.com/mod7ex/chrome-ext-test/internal/client/tui"
	"github.com/mod7ex/chrome-ext-test/internal/cryptox"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/server"
	"github.com/mod7ex/chrome-ext-test/internal/server/repositories/kv"

	sc "github.com/mod7ex/chrome-ext-test/internal/server/config"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	logFile io.Closer
	port    client.Port
	ctrl    *controller.Controller

	in  io.Reader
	out io.Writer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, logFile, err := newLogger(c)
	if err != nil {
		return nil, err
	}

	port, err := newPort(ctx, c, logger)
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}

	return &App{
		config:  c,
		logger:  logger,
		logFile: logFile,
		port:    port,
		ctrl:    controller.NewController(port, controller.WithLogger(logger)),
		in:      os.Stdin,
		out:     os.Stdout,
	}, nil
}

// newLogger writes text logs to the configured file. Logging to the
// terminal would corrupt the TUI, so without a file logs are discarded.
func newLogger(c *config.Config) (logging.Logger, io.Closer, error) {
	if c.LogFile == "" {
		return logging.Discard(), nil, nil
	}
	f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("log file error: %w", err)
	}
	return logging.New(f, c.LogLevel, "text"), f, nil
}

func newPort(ctx context.Context, c *config.Config, logger logging.Logger) (client.Port, error) {
	if !c.Embedded {
		return client.NewGRPCClient(c.ServerEndpointAddr, c.RequestTimeout, logger)
	}

	bg := &sc.Config{}
	bg.LoadDefaults()
	bg.StorageDriver = kv.DriverSQLite
	bg.StorageDSN = c.EmbeddedDSN
	bg.Codec = cryptox.CodecIdentity

	app, err := server.NewAppWithLogger(ctx, bg, logger)
	if err != nil {
		return nil, fmt.Errorf("embedded store error: %w", err)
	}
	return client.NewLocalPort(app.Dispatcher(), app), nil
}

// Run blocks until the renderer exits, then releases the port.
func (app *App) Run(ctx context.Context) error {
	defer app.Close()

	app.logger.Info(ctx, "popup opened", "ui", app.config.UI, "embedded", app.config.Embedded)

	var err error
	switch app.config.UI {
	case config.UIPlain:
		err = cli.NewApp(app.ctrl, app.in, app.out).Run(ctx)
	case config.UITUI, "":
		err = tui.Run(ctx, app.ctrl, tui.Options{CheckInterval: app.config.OnlineCheckInterval})
	default:
		err = fmt.Errorf("unknown ui %q", app.config.UI)
	}

	if err != nil {
		app.logger.Error(ctx, "popup failed", "error", err)
	}
	return err
}

func (app *App) Close() error {
	err := app.port.Close()
	if app.logFile != nil {
		if cerr := app.logFile.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
