package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mod7ex/chrome-ext-test/internal/client/controller"
)

type fakeExec struct {
	calls    []string
	closeOn  string
	failWith error
}

func (f *fakeExec) record(name string) (controller.Outcome, error) {
	f.calls = append(f.calls, name)
	if f.failWith != nil {
		return controller.Outcome{}, f.failWith
	}
	return controller.Outcome{Close: name == f.closeOn}, nil
}

func (f *fakeExec) help() string { return "everything" }
func (f *fakeExec) Next(context.Context) (controller.Outcome, error) {
	return f.record("next")
}
func (f *fakeExec) Reset(context.Context) (controller.Outcome, error) {
	return f.record("reset")
}
func (f *fakeExec) Regenerate(context.Context) (controller.Outcome, error) {
	return f.record("regenerate")
}
func (f *fakeExec) Logout(context.Context) (controller.Outcome, error) {
	return f.record("logout")
}

func scan(cmds ...string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(strings.Join(cmds, "\n")))
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	var printed bytes.Buffer
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "status" },
		scan("help", "", "next", "r", "regenerate", "logout", "reset", "foobar", "exit", "next"), &printed)

	assert.Equal(t, []string{"next", "regenerate", "regenerate", "logout", "reset"}, exec.calls)
	out := printed.String()
	assert.Contains(t, out, "Available commands: everything")
	assert.Contains(t, out, "Unknown command: foobar")
	assert.Contains(t, out, "Bye!")
	assert.Contains(t, out, "vault status> ")
}

func TestRunREPL_StopsWhenActionCloses(t *testing.T) {
	exec := &fakeExec{closeOn: "reset"}

	runREPL(context.Background(), exec, func() string { return "" }, scan("reset", "next"), io.Discard)

	assert.Equal(t, []string{"reset"}, exec.calls)
}

func TestRunREPL_ErrorsDoNotStopLoop(t *testing.T) {
	var printed bytes.Buffer
	exec := &fakeExec{failWith: errors.New("nope")}

	runREPL(context.Background(), exec, func() string { return "" }, scan("next", "logout"), &printed)

	assert.Equal(t, []string{"next", "logout"}, exec.calls)
	assert.Contains(t, printed.String(), "Error: nope")
}

func TestRunREPL_CancelledContext(t *testing.T) {
	exec := &fakeExec{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	runREPL(ctx, exec, func() string { return "" }, scan("next"), io.Discard)
	assert.Empty(t, exec.calls)
}
