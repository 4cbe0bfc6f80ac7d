package client

import "errors"

var (
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnexpectedStatus  = errors.New("unexpected status")
	ErrUnavailable       = errors.New("server unavailable")
)
