package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mod7ex/chrome-ext-test/internal/client/controller"
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	help() string
	Next(ctx context.Context) (controller.Outcome, error)
	Reset(ctx context.Context) (controller.Outcome, error)
	Regenerate(ctx context.Context) (controller.Outcome, error)
	Logout(ctx context.Context) (controller.Outcome, error)
}

// runREPL reads one command per line and dispatches it to a, printing to
// out. The loop exits on EOF, on "exit" or "quit", when an action asks to
// close, or when ctx is done. Action errors are printed and the loop
// continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner, out io.Writer) {
	writeln := func(args ...any) { fmt.Fprintln(out, args...) }

	for {
		if ctx.Err() != nil {
			return
		}

		writeln(fmt.Sprintf("vault %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		var action func(context.Context) (controller.Outcome, error)
		switch cmd {
		case "help":
			writeln("Available commands:", a.help())
			continue
		case "next", "n":
			action = a.Next
		case "reset":
			action = a.Reset
		case "regenerate", "r":
			action = a.Regenerate
		case "logout":
			action = a.Logout
		case "exit", "quit":
			writeln("Bye!")
			return
		default:
			writeln("Unknown command:", cmd)
			continue
		}

		outcome, err := action(ctx)
		if err != nil {
			writeln("Error:", err.Error())
			continue
		}
		if outcome.Close {
			writeln("Bye!")
			return
		}
	}
}
