package config

import "github.com/caarlos0/env/v10"

func parseEnv(cfg *Config) {
	if err := env.Parse(cfg); err != nil {
		panic(err)
	}
}
