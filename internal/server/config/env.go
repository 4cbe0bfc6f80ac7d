package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const envPrefix = "SHOPPAL_SERVER_"

// parseEnv loads an optional dotenv file and overlays cfg with
// SHOPPAL_SERVER_* variables.
func parseEnv(cfg *Config, dotenvPath string) error {
	if dotenvPath != "" {
		if _, err := os.Stat(dotenvPath); err == nil {
			if err := godotenv.Load(dotenvPath); err != nil {
				return err
			}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix})
}
