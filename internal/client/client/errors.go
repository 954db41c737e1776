package client

import "errors"

var (
	ErrUnavailable     = errors.New("background unavailable")
	ErrMismatchedReply = errors.New("reply does not match request")
)
