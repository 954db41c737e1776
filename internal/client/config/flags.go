package config

import (
	"flag"
	"time"

	"github.com/mod7ex/chrome-ext-test/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
// Unknown flags are filtered out with flagx.FilterArgs, so flags owned by
// other components (like -c) do not interfere.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-t", "-i", "-u", "-e", "-d", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access the background")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	onlineCheckInterval := fs.Int("i", int(cfg.OnlineCheckInterval.Seconds()), "online check interval (in seconds)")
	fs.StringVar(&cfg.UI, "u", cfg.UI, "renderer (tui, plain)")
	fs.BoolVar(&cfg.Embedded, "e", cfg.Embedded, "run the store in-process")
	fs.StringVar(&cfg.EmbeddedDSN, "d", cfg.EmbeddedDSN, "sqlite file for embedded mode")
	fs.StringVar(&cfg.LogFile, "o", cfg.LogFile, "log file")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.OnlineCheckInterval = time.Duration(*onlineCheckInterval) * time.Second
}
