package server

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/mod7ex/chrome-ext-test/internal/logging"
	"github.com/mod7ex/chrome-ext-test/internal/protocol"
	"github.com/mod7ex/chrome-ext-test/internal/server/config"
	"github.com/mod7ex/chrome-ext-test/internal/server/repositories/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.StorageDSN = filepath.Join(t.TempDir(), "vault.db")
	c.ListenAddr = "127.0.0.1:0"
	return c
}

func TestNewApp_UnknownCodec(t *testing.T) {
	c := testConfig(t)
	c.Codec = "rot13"

	_, err := NewAppWithLogger(context.Background(), c, logging.Discard())
	require.Error(t, err)
}

func TestNewApp_UnknownDriver(t *testing.T) {
	c := testConfig(t)
	c.StorageDriver = "etcd"

	_, err := NewAppWithLogger(context.Background(), c, logging.Discard())
	require.ErrorIs(t, err, kv.ErrUnknownDriver)
}

func TestApp_StateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	c.Codec = "aes-gcm"
	c.Passphrase = "correct horse"

	app, err := NewAppWithLogger(ctx, c, logging.Discard())
	require.NoError(t, err)

	d := app.Dispatcher()
	_, err = d.Handle(ctx, protocol.NewRequest(protocol.ActionStoreSecret, "s3cr3t"))
	require.NoError(t, err)
	_, err = d.Handle(ctx, protocol.NewRequest(protocol.ActionInit, ""))
	require.NoError(t, err)
	_, err = d.Handle(ctx, protocol.NewRequest(protocol.ActionSignIn, ""))
	require.NoError(t, err)
	require.NoError(t, app.Close())

	app, err = NewAppWithLogger(ctx, c, logging.Discard())
	require.NoError(t, err)
	defer app.Close()

	resp, err := app.Dispatcher().Handle(ctx, protocol.NewRequest(protocol.ActionGetState, ""))
	require.NoError(t, err)
	assert.Equal(t, protocol.State{Secret: "s3cr3t", Initialized: true, Authenticated: false}, resp.State)
}

func TestApp_WrongPassphraseFailsRestore(t *testing.T) {
	ctx := context.Background()
	c := testConfig(t)
	c.Codec = "aes-gcm"
	c.Passphrase = "one"

	app, err := NewAppWithLogger(ctx, c, logging.Discard())
	require.NoError(t, err)
	_, err = app.Dispatcher().Handle(ctx, protocol.NewRequest(protocol.ActionStoreSecret, "s3cr3t"))
	require.NoError(t, err)
	require.NoError(t, app.Close())

	c.Passphrase = "two"
	_, err = NewAppWithLogger(ctx, c, logging.Discard())
	require.Error(t, err)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	c := testConfig(t)
	c.StorageDriver = kv.DriverMemory

	app, err := NewAppWithLogger(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestApp_RunAddressInUse(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer lis.Close()

	c := testConfig(t)
	c.StorageDriver = kv.DriverMemory
	c.ListenAddr = lis.Addr().String()

	app, err := NewAppWithLogger(context.Background(), c, logging.Discard())
	require.NoError(t, err)

	require.Error(t, app.Run(context.Background()))
}
