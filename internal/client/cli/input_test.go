package cli

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, pw func(int) ([]byte, error)) {
	t.Helper()
	oldRead, oldIs := readPassword, isTerminal
	t.Cleanup(func() { readPassword, isTerminal = oldRead, oldIs })

	isTerminal = func(int) bool { return terminal }
	if pw != nil {
		readPassword = pw
	}
}

func lines(s string) *bufio.Scanner {
	return bufio.NewScanner(strings.NewReader(s))
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return []byte("hunter2"), nil })

	var out bytes.Buffer
	got, err := GetPassword(&out, "Enter password", 0, lines(""))
	require.NoError(t, err)
	require.Equal(t, "hunter2", string(got))
	require.Equal(t, "Enter password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, func(int) ([]byte, error) { return nil, errors.New("boom") })

	var out bytes.Buffer
	_, err := GetPassword(&out, "Enter password", 0, lines(""))
	require.Error(t, err)
}

func TestGetPassword_FallsBackToLines(t *testing.T) {
	stubTerminal(t, false, func(int) ([]byte, error) {
		t.Fatal("terminal must not be read")
		return nil, nil
	})

	var out bytes.Buffer
	sc := lines("first\r\nsecond\n")
	got, err := GetPassword(&out, "pw", -1, sc)
	require.NoError(t, err)
	require.Equal(t, "first", string(got))

	got, err = GetPassword(&out, "pw", -1, sc)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	_, err = GetPassword(&out, "pw", -1, sc)
	require.ErrorIs(t, err, io.EOF)
}
