package config

import (
	"encoding/json"
	"os"

	"github.com/mod7ex/chrome-ext-test/internal/flagx"
)

// JsonConfig is the on-disk form; it is copied into Config field by field
// so that keys missing from the file keep their defaults.
type JsonConfig struct {
	ListenAddr       string `json:"listen_addr"`
	StorageDriver    string `json:"storage_driver"`
	StorageDSN       string `json:"storage_dsn"`
	StorageNamespace string `json:"storage_namespace"`
	Codec            string `json:"codec"`
	Passphrase       string `json:"passphrase"`
	LogLevel         string `json:"log_level"`
	LogFormat        string `json:"log_format"`
}

func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.ListenAddr, jc.ListenAddr)
	overlay(&cfg.StorageDriver, jc.StorageDriver)
	overlay(&cfg.StorageDSN, jc.StorageDSN)
	overlay(&cfg.StorageNamespace, jc.StorageNamespace)
	overlay(&cfg.Codec, jc.Codec)
	overlay(&cfg.Passphrase, jc.Passphrase)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.LogFormat, jc.LogFormat)
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
