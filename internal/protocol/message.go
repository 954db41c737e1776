package protocol

import "github.com/google/uuid"

type Action string

const (
	ActionGetState    Action = "GET_STATE"
	ActionSetState    Action = "SET_STATE"
	ActionStoreSecret Action = "STORE_SECRET"
	ActionInit        Action = "INIT"
	ActionSignIn      Action = "SIGN_IN"
	ActionSignOut     Action = "SIGN_OUT"
	ActionReset       Action = "RESET"
)

// Mutating reports whether the action changes background state.
func (a Action) Mutating() bool {
	switch a {
	case ActionStoreSecret, ActionInit, ActionSignIn, ActionSignOut, ActionReset:
		return true
	}
	return false
}

// State is the snapshot carried by SET_STATE. An empty Secret means no
// secret has been stored.
type State struct {
	Secret        string
	Initialized   bool
	Authenticated bool
}

// Request is a popup→background message. Payload is only used by
// STORE_SECRET.
type Request struct {
	ID      string
	Action  Action
	Payload string
}

// Response is a background→popup message.
type Response struct {
	ID     string
	Action Action
	State  State
}

// NewRequest builds a request with a fresh id.
func NewRequest(action Action, payload string) Request {
	return Request{ID: uuid.NewString(), Action: action, Payload: payload}
}

// Reply builds the SET_STATE reply for r.
func (r Request) Reply(s State) Response {
	return Response{ID: r.ID, Action: ActionSetState, State: s}
}
