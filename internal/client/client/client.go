package client

import "context"

// Client authenticates credentials against the ShopPal service.
type Client interface {
	Authenticate(ctx context.Context, email, password string) AuthResult
	Ping(ctx context.Context) error
}
