package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testYAML = `
server:
  port: 9999
  read_timeout: 30s

upstream:
  base_url: "http://civic.local/v1"
  timeout: 15s
  requests_per_second: 10
  burst: 5

chat:
  endpoint: "http://civic.local/v1/chat/stream"
  default_provider: "openai"

maps:
  state_boundary_url: "http://civic.local/v1/boundaries/states.geojson"
  boundary_timeout: 20s

log:
  level: "debug"
  format: "json"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "http://civic.local/v1", cfg.Upstream.BaseURL)
	assert.Equal(t, 10.0, cfg.Upstream.RequestsPerSecond)
	assert.Equal(t, "openai", cfg.Chat.DefaultProvider)
	assert.Equal(t, 20*time.Second, cfg.Maps.BoundaryTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	assert.Same(t, cfg, Get())
}

func TestLoadAPIKeyFallsBackToEnv(t *testing.T) {
	t.Setenv("CHAT_API_KEY", "from-env")

	cfg, err := Load(writeConfig(t, testYAML))
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Chat.APIKey)
}

func TestLoadConfigFileWinsOverEnv(t *testing.T) {
	t.Setenv("CHAT_API_KEY", "from-env")

	cfg, err := Load(writeConfig(t, `
chat:
  api_key: "from-file"
`))
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Chat.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
