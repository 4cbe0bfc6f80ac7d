// Package common contains shared constants and sentinel errors used across
// ShopPal components.
package common

const (
	// VaultService is the secure storage service name under which the
	// cached credentials are kept.
	VaultService = "ShopPal"

	// VaultAccount is the secure storage account name of the cached
	// credentials entry.
	VaultAccount = "emailAndPassword"

	// RequestIDHeaderName carries a per-request correlation id from the
	// client to the login endpoint.
	RequestIDHeaderName = "X-Request-ID"

	// LoginPath is the path of the login endpoint on the ShopPal API.
	LoginPath = "/user/login"
)
