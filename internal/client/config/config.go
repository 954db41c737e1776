package config

import (
	"os"
	"time"
)

const (
	UITUI   = "tui"
	UIPlain = "plain"
)

// Config holds runtime settings for the popup.
//
// Fields:
//   - ServerEndpointAddr: host:port of the background gRPC endpoint.
//   - RequestTimeout: deadline applied to every request without one.
//   - OnlineCheckInterval: how often the TUI probes background reachability.
//   - UI: renderer, UITUI or UIPlain.
//   - Embedded/EmbeddedDSN: run the store in-process on a sqlite file.
//   - LogFile/LogLevel: text log destination; empty LogFile discards logs.
type Config struct {
	ServerEndpointAddr  string        `env:"VAULT_SERVER_ADDR"`
	RequestTimeout      time.Duration `env:"VAULT_REQUEST_TIMEOUT"`
	OnlineCheckInterval time.Duration `env:"VAULT_ONLINE_CHECK_INTERVAL"`
	UI                  string        `env:"VAULT_UI"`
	Embedded            bool          `env:"VAULT_EMBEDDED"`
	EmbeddedDSN         string        `env:"VAULT_EMBEDDED_DSN"`
	LogFile             string        `env:"VAULT_POPUP_LOG_FILE"`
	LogLevel            string        `env:"VAULT_POPUP_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 3 * time.Second
	c.OnlineCheckInterval = 3 * time.Second
	c.UI = UITUI
	c.EmbeddedDSN = "vault.db"
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
