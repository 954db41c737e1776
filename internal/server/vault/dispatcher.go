package vault

import (
	"context"
	"fmt"

	"github.com/mod7ex/chrome-ext-test/internal/common"
	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

// Dispatcher routes a request to the Store. Every reply is a SET_STATE
// carrying the state after the action, which doubles as the
// acknowledgement of a mutating action.
type Dispatcher struct {
	store  *Store
	logger logging.Logger
}

func NewDispatcher(store *Store, logger logging.Logger) *Dispatcher {
	return &Dispatcher{store: store, logger: logger.With("module", "dispatcher")}
}

func (d *Dispatcher) Handle(ctx context.Context, req protocol.Request) (protocol.Response, error) {
	d.logger.Debug(ctx, "dispatching", "id", req.ID, "action", req.Action)

	var (
		state State
		err   error
	)

	switch req.Action {
	case protocol.ActionGetState:
		state = d.store.State()
	case protocol.ActionStoreSecret:
		state, err = d.store.StoreSecret(ctx, req.Payload)
	case protocol.ActionInit:
		state, err = d.store.Init(ctx)
	case protocol.ActionSignIn:
		state, err = d.store.SignIn(ctx)
	case protocol.ActionSignOut:
		state, err = d.store.SignOut(ctx)
	case protocol.ActionReset:
		state, err = d.store.Reset(ctx)
	default:
		err = fmt.Errorf("%w: %q", common.ErrUnknownAction, req.Action)
	}

	if err != nil {
		d.logger.Error(ctx, "action failed", "id", req.ID, "action", req.Action, "error", err.Error())
		return protocol.Response{}, err
	}
	return req.Reply(state), nil
}
