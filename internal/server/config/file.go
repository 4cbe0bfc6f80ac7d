package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/shoppal/internal/flagx"
	"github.com/dmitrijs2005/shoppal/internal/timex"
	"gopkg.in/yaml.v3"
)

// FileConfig is an intermediate DTO used only for reading configuration
// files. timex.Duration accepts both "15m" strings and integer nanoseconds.
type FileConfig struct {
	EndpointAddr          string          `json:"endpoint_addr" yaml:"endpoint_addr"`
	SecretKey             string          `json:"secret_key" yaml:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration" yaml:"token_validity_duration"`
	SeedUsers             []string        `json:"seed_users" yaml:"seed_users"`
	LogLevel              string          `json:"log_level" yaml:"log_level"`
	LogFormat             string          `json:"log_format" yaml:"log_format"`
}

// parseFile loads the file named by -c or -config. Files ending in .yaml or
// .yml are decoded as YAML, everything else as JSON. Fields missing from the
// file keep their current value.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlag(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return err
	}

	if fc.EndpointAddr != "" {
		cfg.EndpointAddr = fc.EndpointAddr
	}
	if fc.SecretKey != "" {
		cfg.SecretKey = fc.SecretKey
	}
	if fc.TokenValidityDuration != nil {
		cfg.TokenValidityDuration = fc.TokenValidityDuration.Duration
	}
	if fc.SeedUsers != nil {
		cfg.SeedUsers = fc.SeedUsers
	}
	if fc.LogLevel != "" {
		cfg.LogLevel = fc.LogLevel
	}
	if fc.LogFormat != "" {
		cfg.LogFormat = fc.LogFormat
	}
	return nil
}
