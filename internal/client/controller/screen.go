package controller

import "github.com/mod7ex/chrome-ext-test/internal/protocol"

// Screen is the view selected by a state; exactly one applies at a time.
type Screen int

const (
	// ScreenSetup offers a generated secret and a password form to initialize.
	ScreenSetup Screen = iota
	// ScreenLogin asks for password and confirmation, or a reset.
	ScreenLogin
	// ScreenSecret shows the secret with logout and regenerate.
	ScreenSecret
)

func (s Screen) String() string {
	switch s {
	case ScreenSetup:
		return "setup"
	case ScreenLogin:
		return "login"
	case ScreenSecret:
		return "secret"
	}
	return "unknown"
}

// ScreenFor picks the screen for st.
func ScreenFor(st protocol.State) Screen {
	switch {
	case !st.Initialized:
		return ScreenSetup
	case !st.Authenticated:
		return ScreenLogin
	default:
		return ScreenSecret
	}
}
