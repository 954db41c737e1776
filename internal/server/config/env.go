package config

import "github.com/caarlos0/env/v10"

// parseEnv overlays VAULT_* variables; unset variables leave fields alone.
func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
