package common

// RequestIDHeaderName is the gRPC metadata key carrying the id of the
// message being dispatched, so server logs can be matched to client logs.
const RequestIDHeaderName = "x-request-id"

// Persisted storage keys.
const (
	KeySecret      = "SECRET"
	KeyInitialized = "INITIALIZED"
)
