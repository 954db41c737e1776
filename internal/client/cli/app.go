package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mod7ex/chrome-ext-test/internal/client/controller"
	"github.com/mod7ex/chrome-ext-test/internal/common"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
)

type App struct {
	ctrl  *controller.Controller
	out   io.Writer
	lines *bufio.Scanner
	fd    int

	mu       sync.Mutex
	rendered *protocol.State
}

// NewApp reads commands from in and prints to out. Hidden password input is
// used when in is a terminal.
func NewApp(ctrl *controller.Controller, in io.Reader, out io.Writer) *App {
	fd := -1
	if f, ok := in.(*os.File); ok {
		fd = int(f.Fd())
	}
	return &App{ctrl: ctrl, out: out, lines: bufio.NewScanner(in), fd: fd}
}

// Run fetches the state, then serves commands until the user leaves.
func (a *App) Run(ctx context.Context) error {
	unsubscribe := a.ctrl.Mirror().Subscribe(a.onChange)
	defer unsubscribe()

	if err := a.ctrl.Refresh(ctx); err != nil {
		return fmt.Errorf("failed to fetch state: %w", err)
	}

	fmt.Fprintln(a.out, "Vault popup (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.lines, a.out)
	return nil
}

func (a *App) status() string {
	return fmt.Sprintf("(%s)", a.ctrl.Screen())
}

// onChange re-renders when the mirrored state changed; busy flips alone are
// not worth a redraw.
func (a *App) onChange(s controller.Snapshot) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.rendered != nil && *a.rendered == s.State {
		return
	}
	st := s.State
	a.rendered = &st
	a.render(st)
}

func (a *App) render(st protocol.State) {
	var b strings.Builder
	b.WriteString("\n")
	switch controller.ScreenFor(st) {
	case controller.ScreenSetup:
		b.WriteString("Type next to initialize the vault with this secret:\n")
		b.WriteString("  " + a.ctrl.Candidate() + "\n")
	case controller.ScreenLogin:
		b.WriteString("Login. Type next to enter your password, or reset to wipe the vault.\n")
	case controller.ScreenSecret:
		b.WriteString("Your secret key:\n")
		b.WriteString("  " + st.Secret + "\n")
	}
	fmt.Fprint(a.out, b.String())
}

func (a *App) help() string {
	switch a.ctrl.Screen() {
	case controller.ScreenSetup:
		return "next, exit"
	case controller.ScreenLogin:
		return "next, reset, exit"
	default:
		return "regenerate, logout, exit"
	}
}

// Next continues from the setup or login screen with a password pair.
func (a *App) Next(ctx context.Context) (controller.Outcome, error) {
	screen := a.ctrl.Screen()
	if screen == controller.ScreenSecret {
		return controller.Outcome{}, fmt.Errorf("%w: %s", controller.ErrWrongScreen, screen)
	}

	password, err := GetPassword(a.out, "Enter password", a.fd, a.lines)
	if err != nil {
		return controller.Outcome{}, err
	}
	defer common.WipeByteArray(password)

	confirmation, err := GetPassword(a.out, "Confirm password", a.fd, a.lines)
	if err != nil {
		return controller.Outcome{}, err
	}
	defer common.WipeByteArray(confirmation)

	if screen == controller.ScreenSetup {
		return a.ctrl.CompleteSetup(ctx, string(password), string(confirmation))
	}
	return a.ctrl.Login(ctx, string(password), string(confirmation))
}

func (a *App) Reset(ctx context.Context) (controller.Outcome, error) {
	return a.ctrl.Reset(ctx)
}

func (a *App) Regenerate(ctx context.Context) (controller.Outcome, error) {
	return a.ctrl.Regenerate(ctx)
}

func (a *App) Logout(ctx context.Context) (controller.Outcome, error) {
	return a.ctrl.Logout(ctx)
}
