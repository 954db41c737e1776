// Package client carries popup requests to the background vault.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic contract (see the Port interface): Send one
//     protocol.Request and receive its SET_STATE acknowledgement, Ping, Close.
//  2. A gRPC implementation (see GRPCClient) that applies a default request
//     deadline via an interceptor, tags calls with the request id and maps
//     gRPC status codes to sentinel errors.
//  3. An in-process implementation (see LocalPort) that calls the dispatcher
//     directly, used in embedded mode and in tests.
//
// # Error Handling
//
// ErrUnavailable and ErrMismatchedReply are sentinels; rejected requests
// surface as common.ErrNotInitialized or common.ErrUnknownAction. All can be
// matched with errors.Is.
//
// Both implementations are safe for concurrent use.
package client
