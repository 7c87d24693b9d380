package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://api.rilaksekai.com/api/songs", cfg.Catalog.URL)
	assert.Equal(t, 15*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 100*time.Millisecond, cfg.Debounce.Query)
	assert.Equal(t, 400*time.Millisecond, cfg.Debounce.Choseong)
	assert.Equal(t, 200*time.Millisecond, cfg.Debounce.Range)
	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Indexer.Readings)
}

func TestFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sekai.yaml")
	yaml := `
catalog:
  file: ./songs.json
  timeout: 5s
debounce:
  query: 150ms
server:
  rate_limit: 30
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	t.Setenv("SEKAI_SERVER__RATE_LIMIT", "90")
	t.Setenv("SEKAI_SERVER__CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("SEKAI_PREFS__IN_MEMORY", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./songs.json", cfg.Catalog.File)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 150*time.Millisecond, cfg.Debounce.Query)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 90, cfg.Server.RateLimit, "env overrides file")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.True(t, cfg.Prefs.InMemory)
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad level", map[string]string{"SEKAI_LOG__LEVEL": "loud"}},
		{"fallback faster than query", map[string]string{"SEKAI_DEBOUNCE__CHOSEONG": "50ms"}},
		{"no catalog", map[string]string{"SEKAI_CATALOG__URL": ""}},
		{"bad asset url", map[string]string{"SEKAI_ASSETS__BASE_URL": "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	assert.Equal(t, "server.rate_limit", envTransformFunc("SEKAI_SERVER__RATE_LIMIT"))
	assert.Equal(t, "assets.base_url", envTransformFunc("SEKAI_ASSETS__BASE_URL"))
	assert.Equal(t, "", envTransformFunc("SEKAI_CONFIG"))
}
