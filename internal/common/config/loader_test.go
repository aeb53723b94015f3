package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "drivethru/internal/common/errors"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: drivethru-test
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "drivethru-test", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "./configs/menu", cfg.Menu.Dir)
	assert.Equal(t, "gpt-4.1-mini", cfg.NLU.Model)
	assert.Equal(t, 5, cfg.NLU.MaxRetries)
	assert.Equal(t, 60000, cfg.NLU.Timeout)
	assert.Equal(t, 1800, cfg.Session.TTL)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadFromFile_ExplicitValues(t *testing.T) {
	path := writeConfigFile(t, `
menu:
  dir: ./testdata/menu
nlu:
  model: gpt-4o
  max_retries: 2
  timeout: 15000
session:
  redis_address: localhost:6379
  ttl: 600
metrics:
  enabled: true
  address: ":9200"
logging:
  level: debug
  format: json
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "./testdata/menu", cfg.Menu.Dir)
	assert.Equal(t, "gpt-4o", cfg.NLU.Model)
	assert.Equal(t, 2, cfg.NLU.MaxRetries)
	assert.Equal(t, "localhost:6379", cfg.Session.RedisAddress)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, ":9200", cfg.Metrics.Address)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 10*time.Minute, SessionTTL(cfg))
}

func TestLoadFromFile_APIKeyFromEnv(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test-123")
	path := writeConfigFile(t, `
app:
  name: drivethru
`)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sk-test-123", cfg.NLU.APIKey)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeConfigInvalid, apperrors.CodeOf(err))
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, GetDuration(1500))
}
