package client

import (
	"context"
	"io"

	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

// Handler processes one request; *vault.Dispatcher implements it.
type Handler interface {
	Handle(ctx context.Context, req protocol.Request) (protocol.Response, error)
}

// LocalPort delivers requests to an in-process Handler.
type LocalPort struct {
	handler Handler
	closer  io.Closer
}

// NewLocalPort wraps h. closer, if not nil, is closed by Close.
func NewLocalPort(h Handler, closer io.Closer) *LocalPort {
	return &LocalPort{handler: h, closer: closer}
}

func (p *LocalPort) Send(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	if err := ctx.Err(); err != nil {
		return protocol.Response{}, err
	}
	resp, err := p.handler.Handle(ctx, req)
	if err != nil {
		return protocol.Response{}, err
	}
	return checkReply(req, resp)
}

func (p *LocalPort) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (p *LocalPort) Close() error {
	if p.closer == nil {
		return nil
	}
	return p.closer.Close()
}
