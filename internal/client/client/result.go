package client

import "fmt"

// AuthResult is the outcome of an authentication attempt. It is one of
// Authenticated, Rejected or NetworkFailure.
type AuthResult interface {
	isAuthResult()
}

// Authenticated carries the profile returned by the server.
type Authenticated struct {
	Profile map[string]any
}

// Rejected means the server definitively refused the credentials.
type Rejected struct {
	Reason string
}

// NetworkFailure means no definitive answer was obtained.
type NetworkFailure struct {
	Cause error
}

func (Authenticated) isAuthResult()  {}
func (Rejected) isAuthResult()       {}
func (NetworkFailure) isAuthResult() {}

func (r Rejected) String() string {
	return fmt.Sprintf("rejected: %s", r.Reason)
}

func (f NetworkFailure) String() string {
	return fmt.Sprintf("network failure: %v", f.Cause)
}

// Unwrap lets errors.Is inspect the cause of a NetworkFailure value.
func (f NetworkFailure) Unwrap() error {
	return f.Cause
}

func (f NetworkFailure) Error() string {
	return f.String()
}
