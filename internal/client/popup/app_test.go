package popup

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mod7ex/chrome-ext-test/internal/client/config"
)

func embeddedConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.UI = config.UIPlain
	c.Embedded = true
	c.EmbeddedDSN = filepath.Join(t.TempDir(), "vault.db")
	return c
}

func runPlain(t *testing.T, c *config.Config, input string) string {
	t.Helper()
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	var out bytes.Buffer
	app.in = strings.NewReader(input)
	app.out = &out
	require.NoError(t, app.Run(context.Background()))
	return out.String()
}

func TestApp_EmbeddedPlainPersistsAcrossRuns(t *testing.T) {
	c := embeddedConfig(t)
	c.LogFile = filepath.Join(t.TempDir(), "popup.log")

	out := runPlain(t, c, "next\npw\npw\n")
	assert.Contains(t, out, "initialize")

	out = runPlain(t, c, "next\npw\npw\nexit\n")
	assert.Contains(t, out, "Your secret key")

	logs, err := os.ReadFile(c.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), "popup opened")
}

func TestApp_UnknownUI(t *testing.T) {
	c := embeddedConfig(t)
	c.UI = "gtk"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)
	require.Error(t, app.Run(context.Background()))
}

func TestApp_BadLogFile(t *testing.T) {
	c := embeddedConfig(t)
	c.LogFile = filepath.Join(t.TempDir(), "missing", "dir", "popup.log")

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
}

func TestApp_RemoteUnavailable(t *testing.T) {
	c := embeddedConfig(t)
	c.Embedded = false
	c.ServerEndpointAddr = "127.0.0.1:1"

	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	app.in = strings.NewReader("")
	app.out = &bytes.Buffer{}
	require.Error(t, app.Run(context.Background()))
}
