// Package metadata is a small key/value repository over the client's
// SQLite database. The sqlite vault keeps its salt and sealed entries here.
package metadata

import (
	"context"
)

// Repository stores opaque byte values by key.
//
// Get reports found == false for a missing key. Insert writes only when the
// key is absent and reports whether it did. Delete of a missing key is not
// an error.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Put(ctx context.Context, key string, value []byte) error
	Insert(ctx context.Context, key string, value []byte) (inserted bool, err error)
	Delete(ctx context.Context, key string) error
}
