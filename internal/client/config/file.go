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

// FileConfig is the DTO used for JSON and YAML decoding. Only fields present
// in the file override the current Config.
type FileConfig struct {
	LoginURL       string          `json:"login_url" yaml:"login_url"`
	RequestTimeout *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	VaultBackend   string          `json:"vault_backend" yaml:"vault_backend"`
	VaultDSN       string          `json:"vault_dsn" yaml:"vault_dsn"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	LogFormat      string          `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with the file named by -c/-config, if any.
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

	fc.apply(cfg)
	return nil
}

func (fc *FileConfig) apply(cfg *Config) {
	setString(&cfg.LoginURL, fc.LoginURL)
	setString(&cfg.VaultBackend, fc.VaultBackend)
	setString(&cfg.VaultDSN, fc.VaultDSN)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
