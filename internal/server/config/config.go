package config

import "os"

// Config holds runtime settings for the background vault process.
type Config struct {
	ListenAddr       string `env:"VAULT_LISTEN_ADDR"`
	StorageDriver    string `env:"VAULT_STORAGE_DRIVER"`
	StorageDSN       string `env:"VAULT_STORAGE_DSN"`
	StorageNamespace string `env:"VAULT_STORAGE_NAMESPACE"`
	Codec            string `env:"VAULT_CODEC"`
	Passphrase       string `env:"VAULT_PASSPHRASE"`
	LogLevel         string `env:"VAULT_LOG_LEVEL"`
	LogFormat        string `env:"VAULT_LOG_FORMAT"`
}

// LoadDefaults populates c with a local-only, sqlite-backed setup.
func (c *Config) LoadDefaults() {
	c.ListenAddr = "127.0.0.1:50051"
	c.StorageDriver = "sqlite"
	c.StorageDSN = "vault.db"
	c.StorageNamespace = "default"
	c.Codec = "identity"
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// LoadConfig applies defaults, then the JSON file, the environment and
// finally the command-line flags. It panics on an unreadable config file or
// malformed flags.
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
