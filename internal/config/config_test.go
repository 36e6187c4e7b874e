package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `{
		"md_dir": "/data/corpus",
		"cache_ttl_hours": 48,
		"gemini_api_key": "key-123",
		"port": 8080
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/corpus", cfg.MDDir)
	assert.Equal(t, 48, cfg.CacheTTLHours)
	assert.Equal(t, "key-123", cfg.GeminiAPIKey)
	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.SerperAPIKey)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := writeConfigFile(t, "not json")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvGeminiAPIKey, "env-gemini")
	t.Setenv(EnvSerperAPIKey, "env-serper")
	t.Setenv(EnvPort, "9090")

	cfg := &Config{GeminiAPIKey: "file-gemini"}
	cfg.FromEnv()

	assert.Equal(t, "file-gemini", cfg.GeminiAPIKey, "file value wins over env")
	assert.Equal(t, "env-serper", cfg.SerperAPIKey)
	assert.Equal(t, 9090, cfg.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"zero value", Config{}, false},
		{"defaults", Defaults(), false},
		{"negative ttl", Config{CacheTTLHours: -1}, true},
		{"negative delay", Config{SearchDelayMS: -1}, true},
		{"port too large", Config{Port: 70000}, true},
		{"negative port", Config{Port: -1}, true},
		{"md_dir does not exist yet", Config{MDDir: "/nonexistent/dir"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_MDDirIsFile(t *testing.T) {
	path := writeConfigFile(t, "{}")
	cfg := Config{MDDir: path}
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{MDDir: "custom", Port: 4000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "custom", merged.MDDir, "set values survive")
	assert.Equal(t, 4000, merged.Port)
	assert.Equal(t, filepath.Join(".cache", "corpus.json"), merged.CacheFile)
	assert.Equal(t, 24, merged.CacheTTLHours)
	assert.Equal(t, 1000, merged.SearchDelayMS)
}

func TestDefaults(t *testing.T) {
	d := Defaults()
	assert.Equal(t, "md", d.MDDir)
	assert.Equal(t, 24, d.CacheTTLHours)
	assert.Equal(t, 3000, d.Port)
}
