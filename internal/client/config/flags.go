package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/shoppal/internal/flagx"
)

// parseFlags overlays cfg with the flags it knows about. Unknown arguments
// are filtered out with flagx.FilterArgs so other stages can own them.
func parseFlags(cfg *Config, args []string) error {
	filtered := flagx.FilterArgs(args, []string{"-u", "-t", "-v", "-d", "-l"})

	fs := flag.NewFlagSet("shoppal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.LoginURL, "u", cfg.LoginURL, "login endpoint URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.VaultBackend, "v", cfg.VaultBackend, "vault backend: keyring, sqlite or memory")
	fs.StringVar(&cfg.VaultDSN, "d", cfg.VaultDSN, "SQLite vault database path")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			cfg.RequestTimeout = time.Duration(*timeout) * time.Second
		}
	})
	return nil
}
