// Package config loads runtime configuration for the background vault
// process (cmd/vaultd).
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (VAULT_*).
//  4. Command-line flags.
//
// Later sources override earlier ones; empty values never override.
//
// Supported flags
//
//	-a string   listen address of the gRPC endpoint
//	-s string   storage driver: sqlite, postgres, redis, memory
//	-d string   storage DSN (sqlite file, postgres DSN, redis URL)
//	-n string   storage namespace (redis hash suffix)
//	-k string   at-rest codec: identity, aes-gcm
//	-p string   passphrase for the aes-gcm codec
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
//	{
//	  "listen_addr": "127.0.0.1:50051",
//	  "storage_driver": "sqlite",
//	  "storage_dsn": "vault.db",
//	  "storage_namespace": "default",
//	  "codec": "identity",
//	  "passphrase": "",
//	  "log_level": "info",
//	  "log_format": "json"
//	}
package config
