// Package kv provides the key-value repositories backing the vault.
//
// The interface mirrors a browser extension's storage area: a multi-key
// Get that simply omits absent keys, an all-or-nothing multi-key Set, and a
// Clear that wipes everything. Backends:
//
//   - sqlite   (default) modernc.org/sqlite, schema via goose
//   - postgres pgx stdlib driver, schema via goose
//   - redis    one hash per vault namespace
//   - memory   process-local map, nothing survives a restart
//
// Open picks the backend by driver name and runs migrations where needed.
package kv
