// Package config loads runtime configuration for the popup (cmd/popup).
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (VAULT_*).
//  4. Command-line flags.
//
// Later sources override earlier ones.
//
// Supported flags
//
//	-a string   address and port of the background gRPC endpoint
//	-t int      request timeout in seconds
//	-i int      online check interval in seconds
//	-u string   renderer: tui or plain
//	-e          embedded mode: run the store in-process, no daemon
//	-d string   sqlite file used by embedded mode
//	-o string   log file; logs are discarded when empty
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "3s",
//	  "online_check_interval": "3s",
//	  "ui": "tui",
//	  "embedded": false,
//	  "embedded_dsn": "vault.db",
//	  "log_file": ""
//	}
//
// Durations accept either strings like "3s" or integer nanoseconds.
package config
