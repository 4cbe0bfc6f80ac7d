// Package config handles configuration for the development login server,
// including defaults, a JSON or YAML overlay, the environment and
// command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds runtime settings for the login server.
//
// Fields:
//   - EndpointAddr: bind address for the HTTP endpoint.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - TokenValidityDuration: lifetime of issued tokens.
//   - SeedUsers: accounts created at start-up, as "email:password" pairs.
//   - LogLevel / LogFormat: slog level and handler.
type Config struct {
	EndpointAddr          string        `env:"ADDR"`
	SecretKey             string        `env:"SECRET_KEY"`
	TokenValidityDuration time.Duration `env:"TOKEN_VALIDITY"`
	SeedUsers             []string      `env:"SEED_USERS" envSeparator:","`
	LogLevel              string        `env:"LOG_LEVEL"`
	LogFormat             string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "secretKey"
	c.TokenValidityDuration = 15 * time.Minute
	c.SeedUsers = []string{"demo@shoppal.dev:demo"}
	c.LogLevel = "info"
	c.LogFormat = "json"
}

// SeedUser is one parsed SeedUsers entry.
type SeedUser struct {
	Email    string
	Password string
}

// ParseSeedUsers splits SeedUsers into email/password pairs. The password
// may itself contain colons.
func (c *Config) ParseSeedUsers() ([]SeedUser, error) {
	users := make([]SeedUser, 0, len(c.SeedUsers))
	for _, s := range c.SeedUsers {
		email, password, ok := strings.Cut(strings.TrimSpace(s), ":")
		if !ok || email == "" || password == "" {
			return nil, fmt.Errorf("invalid seed user %q: want email:password", s)
		}
		users = append(users, SeedUser{Email: email, Password: password})
	}
	return users, nil
}

// Validate checks that the combination of settings is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.EndpointAddr == "" {
		errs = append(errs, errors.New("endpoint address is required"))
	}
	if c.SecretKey == "" {
		errs = append(errs, errors.New("secret key is required"))
	}
	if c.TokenValidityDuration <= 0 {
		errs = append(errs, errors.New("token validity must be positive"))
	}
	if _, err := c.ParseSeedUsers(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional config file, the environment and finally command-line
// flags.
func LoadConfig() (*Config, error) {
	return load(os.Args[1:])
}

func load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg, ".env"); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
