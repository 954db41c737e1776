package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mod7ex/chrome-ext-test/internal/client/client"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

var (
	ErrBusy             = errors.New("a request is already in flight")
	ErrPasswordMismatch = errors.New("password and confirmation do not match")
	ErrWrongScreen      = errors.New("action not available on this screen")
)

// Outcome tells the renderer what to do after an action.
type Outcome struct {
	// Close asks the renderer to exit, like the popup window closing.
	Close bool
}

type Controller struct {
	port   client.Port
	mirror *Mirror
	source Source
	logger logging.Logger

	mu        sync.Mutex
	candidate string
}

type Option func(*Controller)

// WithSource sets the generator used for new secrets.
func WithSource(src Source) Option {
	return func(c *Controller) { c.source = src }
}

func WithLogger(l logging.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

func WithMirror(m *Mirror) Option {
	return func(c *Controller) { c.mirror = m }
}

func NewController(port client.Port, opts ...Option) *Controller {
	c := &Controller{port: port}
	for _, opt := range opts {
		opt(c)
	}
	if c.mirror == nil {
		c.mirror = NewMirror()
	}
	if c.logger == nil {
		c.logger = logging.Discard()
	}
	c.logger = c.logger.With("module", "controller")
	return c
}

func (c *Controller) Mirror() *Mirror {
	return c.mirror
}

func (c *Controller) Screen() Screen {
	return ScreenFor(c.mirror.State())
}

// Candidate is the secret offered on the setup screen. It stays the same
// until setup completes, so the user confirms the value they were shown.
func (c *Controller) Candidate() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.candidate == "" {
		c.candidate = GenerateSecret(c.source)
	}
	return c.candidate
}

// Ping reports whether the background is reachable.
func (c *Controller) Ping(ctx context.Context) error {
	return c.port.Ping(ctx)
}

// Refresh asks the background for the current state.
func (c *Controller) Refresh(ctx context.Context) error {
	_, err := c.send(ctx, protocol.NewRequest(protocol.ActionGetState, ""))
	return err
}

// CompleteSetup stores the candidate secret and initializes the record.
func (c *Controller) CompleteSetup(ctx context.Context, password, confirmation string) (Outcome, error) {
	if err := c.expect(ScreenSetup); err != nil {
		return Outcome{}, err
	}
	if password != confirmation {
		return Outcome{}, ErrPasswordMismatch
	}

	candidate := c.Candidate()
	_, err := c.send(ctx,
		protocol.NewRequest(protocol.ActionStoreSecret, candidate),
		protocol.NewRequest(protocol.ActionInit, ""),
	)
	if err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	c.candidate = ""
	c.mu.Unlock()

	c.logger.Info(ctx, "setup completed")
	return Outcome{Close: true}, nil
}

// Login compares the two entries locally; the background never sees them.
func (c *Controller) Login(ctx context.Context, password, confirmation string) (Outcome, error) {
	if err := c.expect(ScreenLogin); err != nil {
		return Outcome{}, err
	}
	if password != confirmation {
		return Outcome{}, ErrPasswordMismatch
	}

	_, err := c.send(ctx, protocol.NewRequest(protocol.ActionSignIn, ""))
	return Outcome{}, err
}

// Reset wipes the record and closes the popup.
func (c *Controller) Reset(ctx context.Context) (Outcome, error) {
	if err := c.expect(ScreenLogin); err != nil {
		return Outcome{}, err
	}
	if _, err := c.send(ctx, protocol.NewRequest(protocol.ActionReset, "")); err != nil {
		return Outcome{}, err
	}

	c.mu.Lock()
	c.candidate = ""
	c.mu.Unlock()

	return Outcome{Close: true}, nil
}

func (c *Controller) Logout(ctx context.Context) (Outcome, error) {
	if err := c.expect(ScreenSecret); err != nil {
		return Outcome{}, err
	}
	_, err := c.send(ctx, protocol.NewRequest(protocol.ActionSignOut, ""))
	return Outcome{}, err
}

// Regenerate replaces the stored secret with a fresh one.
func (c *Controller) Regenerate(ctx context.Context) (Outcome, error) {
	if err := c.expect(ScreenSecret); err != nil {
		return Outcome{}, err
	}
	_, err := c.send(ctx, protocol.NewRequest(protocol.ActionStoreSecret, GenerateSecret(c.source)))
	return Outcome{}, err
}

func (c *Controller) expect(s Screen) error {
	if got := c.Screen(); got != s {
		return fmt.Errorf("%w: %s", ErrWrongScreen, got)
	}
	return nil
}

// send delivers reqs in order under one busy period. The mirror takes the
// state of the last acknowledgement; on error it keeps the state of the
// last request that did succeed.
func (c *Controller) send(ctx context.Context, reqs ...protocol.Request) (protocol.State, error) {
	mutating := false
	for _, r := range reqs {
		mutating = mutating || r.Action.Mutating()
	}
	t, ok := c.mirror.begin(mutating)
	if !ok {
		return protocol.State{}, ErrBusy
	}

	var last *protocol.State
	for _, req := range reqs {
		resp, err := c.port.Send(ctx, req)
		if err != nil {
			c.logger.Warn(ctx, "request failed", "action", req.Action, "request_id", req.ID, "error", err)
			c.mirror.end(t, last)
			return protocol.State{}, err
		}
		st := resp.State
		last = &st
	}

	c.mirror.end(t, last)
	return *last, nil
}
