// Package config loads runtime configuration for the ShopPal client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config. Files ending
//     in .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables prefixed with SHOPPAL_, after loading a .env
//     file from the working directory when one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-u string   login endpoint URL
//	-t int      request timeout (seconds)
//	-v string   vault backend: keyring, sqlite or memory
//	-d string   SQLite vault database path
//	-l string   log level: debug, info, warn, error
//
// Environment
//
//	SHOPPAL_LOGIN_URL, SHOPPAL_REQUEST_TIMEOUT ("15s"), SHOPPAL_VAULT_BACKEND,
//	SHOPPAL_VAULT_DSN, SHOPPAL_VAULT_PASSPHRASE, SHOPPAL_LOG_LEVEL,
//	SHOPPAL_LOG_FORMAT
//
// The vault passphrase is deliberately not accepted as a flag, so it does
// not show up in process listings.
//
// # File schema
//
//	{
//	  "login_url": "https://www.wangevan.com/user/login",
//	  "request_timeout": "15s",
//	  "vault_backend": "sqlite",
//	  "vault_dsn": "shoppal.db",
//	  "log_level": "debug"
//	}
package config
