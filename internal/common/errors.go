// Package common defines shared constants and sentinel errors used across
// the background store and the popup client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Service-level errors.
	ErrorInternal = errors.New("internal error")

	// Protocol errors.
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedMessage = errors.New("malformed message")

	// State errors.
	ErrNotInitialized = errors.New("vault is not initialized")
	ErrCorruptState   = errors.New("corrupt persisted state")
)
