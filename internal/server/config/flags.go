package config

import (
	"flag"

	"github.com/mod7ex/chrome-ext-test/internal/flagx"
)

func parseFlags(cfg *Config, args []string) {
	// Filter args to include only the flags handled here.
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-n", "-k", "-p", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "address and port to listen on")
	fs.StringVar(&cfg.StorageDriver, "s", cfg.StorageDriver, "storage driver (sqlite, postgres, redis, memory)")
	fs.StringVar(&cfg.StorageDSN, "d", cfg.StorageDSN, "storage DSN")
	fs.StringVar(&cfg.StorageNamespace, "n", cfg.StorageNamespace, "storage namespace")
	fs.StringVar(&cfg.Codec, "k", cfg.Codec, "at-rest codec (identity, aes-gcm)")
	fs.StringVar(&cfg.Passphrase, "p", cfg.Passphrase, "passphrase for the aes-gcm codec")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
