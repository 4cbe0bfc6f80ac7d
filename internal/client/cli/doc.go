// Package cli provides the interactive ShopPal terminal client.
//
// It wires configuration, the credential vault, the login API client and the
// session manager, then runs a small REPL. On start the cached session is
// restored silently; if that fails the user is prompted for credentials.
//
// Commands:
//   - login / logout
//   - status: show the signed-in user and whether the service is reachable
//   - help, exit | quit
//
// Network calls run in the background with a progress indicator; Ctrl-C
// while a call is in flight cancels it and returns to the prompt.
package cli
