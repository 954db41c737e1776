// Package vault is the background half of the vault: the single user's
// record, persisted through a kv.Repository, and the dispatcher that turns
// protocol requests into operations on it.
//
// Persisted: SECRET (codec-encoded) and INITIALIZED. The authenticated
// flag is session-scoped and starts false on every process start.
package vault
