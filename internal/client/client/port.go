package client

import (
	"context"
	"fmt"

	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

// Port is the popup's connection to the background.
type Port interface {
	Send(ctx context.Context, req protocol.Request) (protocol.Response, error)
	Ping(ctx context.Context) error
	Close() error
}

func checkReply(req protocol.Request, resp protocol.Response) (protocol.Response, error) {
	if resp.ID != req.ID {
		return protocol.Response{}, fmt.Errorf("%w: sent %s, got %s", ErrMismatchedReply, req.ID, resp.ID)
	}
	if resp.Action != protocol.ActionSetState {
		return protocol.Response{}, fmt.Errorf("%w: unexpected action %s", ErrMismatchedReply, resp.Action)
	}
	return resp, nil
}
