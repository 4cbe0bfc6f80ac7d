package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_parseEnv(t *testing.T) {
	t.Setenv("SHOPPAL_LOGIN_URL", "http://env/user/login")
	t.Setenv("SHOPPAL_REQUEST_TIMEOUT", "7s")
	t.Setenv("SHOPPAL_VAULT_PASSPHRASE", "from-env")

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, ""))

	assert.Equal(t, "http://env/user/login", cfg.LoginURL)
	assert.Equal(t, 7*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "from-env", cfg.VaultPassphrase)
	assert.Equal(t, "keyring", cfg.VaultBackend, "unset variables keep defaults")
}

func Test_parseEnv_DotenvFile(t *testing.T) {
	path := writeTemp(t, ".env", "SHOPPAL_LOG_FORMAT=json\n")
	t.Cleanup(func() { _ = os.Unsetenv("SHOPPAL_LOG_FORMAT") })

	cfg := defaults()
	require.NoError(t, parseEnv(cfg, path))

	assert.Equal(t, "json", cfg.LogFormat)
}

func Test_parseEnv_MissingDotenvIsFine(t *testing.T) {
	cfg := defaults()
	require.NoError(t, parseEnv(cfg, "/nonexistent/.env"))
	assert.Equal(t, defaults(), cfg)
}

func Test_parseEnv_BadDuration(t *testing.T) {
	t.Setenv("SHOPPAL_REQUEST_TIMEOUT", "soon")
	require.Error(t, parseEnv(defaults(), ""))
}
