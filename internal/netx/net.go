// Package netx resolves listen addresses for the background endpoint.
package netx

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strings"
)

const unixPrefix = "unix:"

// Listen accepts "host:port" for TCP or "unix:/path/to.sock" (also
// "unix:///path/to.sock") for a unix domain socket, the same spellings the
// gRPC client dials. A stale socket file left by a previous run is removed.
func Listen(address string) (net.Listener, error) {
	if !strings.HasPrefix(address, unixPrefix) {
		return net.Listen("tcp", address)
	}

	path := SocketPath(address)
	if path == "" {
		return nil, fmt.Errorf("empty unix socket path in %q", address)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("remove stale socket: %w", err)
	}
	return net.Listen("unix", path)
}

// SocketPath returns the filesystem path of a unix address, or "" for
// anything else.
func SocketPath(address string) string {
	if !strings.HasPrefix(address, unixPrefix) {
		return ""
	}
	path := strings.TrimPrefix(address, unixPrefix)
	if strings.HasPrefix(path, "//") {
		path = strings.TrimPrefix(path, "//")
	}
	return path
}
