package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/shoppal/internal/client/vault"
)

// Config holds runtime settings for the ShopPal client.
type Config struct {
	LoginURL        string        `env:"LOGIN_URL"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT"`
	VaultBackend    string        `env:"VAULT_BACKEND"`
	VaultDSN        string        `env:"VAULT_DSN"`
	VaultPassphrase string        `env:"VAULT_PASSPHRASE"`
	LogLevel        string        `env:"LOG_LEVEL"`
	LogFormat       string        `env:"LOG_FORMAT"`
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.LoginURL = "https://www.wangevan.com/user/login"
	c.RequestTimeout = 15 * time.Second
	c.VaultBackend = string(vault.BackendKeyring)
	c.VaultDSN = "shoppal.db"
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Validate checks that the combination of settings is usable.
func (c *Config) Validate() error {
	var errs []error
	if c.LoginURL == "" {
		errs = append(errs, errors.New("login url is required"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("request timeout must not be negative"))
	}
	switch vault.Backend(c.VaultBackend) {
	case vault.BackendKeyring, vault.BackendMemory:
	case vault.BackendSQLite:
		if c.VaultDSN == "" {
			errs = append(errs, errors.New("sqlite vault needs a database path"))
		}
		if c.VaultPassphrase == "" {
			errs = append(errs, errors.New("sqlite vault needs SHOPPAL_VAULT_PASSPHRASE"))
		}
	default:
		errs = append(errs, fmt.Errorf("%w: %q", vault.ErrUnknownBackend, c.VaultBackend))
	}
	return errors.Join(errs...)
}

// VaultOptions converts the vault settings for vault.Open.
func (c *Config) VaultOptions() vault.Options {
	return vault.Options{
		Backend:    vault.Backend(c.VaultBackend),
		DSN:        c.VaultDSN,
		Passphrase: c.VaultPassphrase,
	}
}

// LoadConfig constructs a Config from defaults, the config file, the
// environment and the process arguments, in that order, and validates it.
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
