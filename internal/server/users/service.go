package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/shoppal/internal/common"
	"github.com/dmitrijs2005/shoppal/internal/cryptox"
	"github.com/dmitrijs2005/shoppal/internal/server/auth"
	"github.com/dmitrijs2005/shoppal/internal/server/config"
	"github.com/google/uuid"
)

// LoginResult is returned by a successful Login.
type LoginResult struct {
	User  *User
	Token string
}

type Service struct {
	repo                  Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	// dummyHash is verified against when the email is unknown so both
	// failure paths cost one Argon2 derivation.
	dummyHash string
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		dummyHash:             cryptox.HashPassword(common.GenerateRandByteArray(16)),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(email)
}

// Register creates a user with an Argon2id password hash.
func (s *Service) Register(ctx context.Context, email string, password []byte) (*User, error) {
	email = normalizeEmail(email)
	if email == "" || len(password) == 0 {
		return nil, errors.New("email and password are required")
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		CreatedAt:    time.Now().UTC(),
	}

	user, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

// Seed registers every user, skipping ones that already exist.
func (s *Service) Seed(ctx context.Context, seeds []config.SeedUser) (int, error) {
	n := 0
	for _, su := range seeds {
		if _, err := s.Register(ctx, su.Email, []byte(su.Password)); err != nil {
			if errors.Is(err, ErrAlreadyExists) {
				continue
			}
			return n, err
		}
		n++
	}
	return n, nil
}

// Login checks the password and issues a token. Unknown users and wrong
// passwords both report common.ErrorUnauthorized.
func (s *Service) Login(ctx context.Context, email string, password []byte) (*LoginResult, error) {
	user, err := s.repo.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			_, _ = cryptox.VerifyPassword(s.dummyHash, password)
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	ok, err := cryptox.VerifyPassword(user.PasswordHash, password)
	if err != nil {
		return nil, common.ErrorInternal
	}
	if !ok {
		return nil, common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, user.Email, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &LoginResult{User: user, Token: token}, nil
}
