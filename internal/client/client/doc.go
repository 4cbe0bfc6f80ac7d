// Package client talks to the ShopPal login endpoint.
//
// # Overview
//
// Client is the transport-agnostic contract used by the session manager;
// HTTPClient is the implementation that POSTs {"email","password"} as JSON
// to the configured login URL.
//
// # Results, not errors
//
// Authenticate never returns an error. Every outcome is an AuthResult:
//
//   - Authenticated: HTTP 200 with a JSON object body. The body is handed
//     back as the profile, with the status code folded in under "status".
//   - Rejected: HTTP 400, 401 or 403. The reason is the response body text.
//   - NetworkFailure: transport errors, context cancellation or timeout,
//     malformed success bodies and any other status code. Match the cause
//     with errors.Is against ErrMalformedResponse or ErrUnexpectedStatus.
//
// A single attempt is made per call; there is no retry.
//
// # Concurrency & Contexts
//
// HTTPClient holds no mutable state after construction and is safe for
// concurrent use. Authenticate blocks the calling goroutine only; callers
// that must stay responsive run it through async.Run.
package client
