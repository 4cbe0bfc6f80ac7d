package users

import (
	"context"
)

// Repository stores users keyed by lowercased email. GetUserByEmail reports
// common.ErrorNotFound for unknown emails; Create reports ErrAlreadyExists
// for duplicates.
type Repository interface {
	Create(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
}
