package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DISCOUNT24_HOME", "")
	t.Setenv("DISCOUNT24_API_URL", "")
	t.Setenv("DISCOUNT24_TIMEOUT", "")
	t.Setenv("DISCOUNT24_PASSPHRASE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.Passphrase)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DISCOUNT24_HOME", "/tmp/d24")
	t.Setenv("DISCOUNT24_API_URL", "https://api.example.com")
	t.Setenv("DISCOUNT24_TIMEOUT", "3s")
	t.Setenv("DISCOUNT24_PASSPHRASE", "correct horse")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/d24", cfg.Home)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, "correct horse", cfg.Passphrase)
}

func TestLoadConfigRejectsBadTimeout(t *testing.T) {
	for _, v := range []string{"soon", "-1s", "0s"} {
		t.Setenv("DISCOUNT24_TIMEOUT", v)
		_, err := LoadConfig()
		assert.Error(t, err, v)
	}
}
