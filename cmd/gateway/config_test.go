package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv points LoadConfig at a fresh directory so no .env or tuning file leaks in.
func isolateEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("GIN_MODE", "release")
	for _, key := range []string{
		"PORT", "MODEL_PROVIDER", "OLLAMA_BASE_URL", "OLLAMA_MODEL", "GEMINI_API_KEY",
		"GEMINI_MODEL", "MCP_MATRIX_URL", "MCP_HANOI_URL", "SEARXNG_URL",
		"GEOCODING_URL", "WEATHER_URL", "DEDUP_BACKEND", "REDIS_ADDR", "GATEWAY_CONFIG",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "6100", cfg.Port)
	assert.Equal(t, ProviderOllama, cfg.Provider)
	assert.Equal(t, "http://host.docker.internal:11434", cfg.OllamaBaseURL)
	assert.Equal(t, "qwen3-vl:2b", cfg.OllamaModel)
	assert.Equal(t, "http://localhost:6101", cfg.MatrixURL)
	assert.Equal(t, "http://localhost:6102", cfg.HanoiURL)
	assert.Equal(t, "http://searxng:8080", cfg.SearchURL)
	assert.Equal(t, DedupMemory, cfg.DedupBackend)
	assert.Equal(t, defaultTuning(), cfg.Tuning)
	assert.Equal(t, 2*time.Second, cfg.Tuning.Dedup.Window)
	assert.Equal(t, 100, cfg.Tuning.Dedup.MaxEntries)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	isolateEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("MODEL_PROVIDER", "Gemini")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("DEDUP_BACKEND", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
	assert.Equal(t, DedupRedis, cfg.DedupBackend)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
}

func TestLoadConfig_TuningFile(t *testing.T) {
	dir := isolateEnv(t)
	path := filepath.Join(dir, "tuning.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_timeout: 45s
tool_concurrency: 4
dedup:
  window: 500ms
`), 0o600))
	t.Setenv("GATEWAY_CONFIG", path)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Tuning.ModelTimeout)
	assert.Equal(t, 15*time.Second, cfg.Tuning.ToolTimeout, "unset keys keep their default")
	assert.Equal(t, 4, cfg.Tuning.ToolConcurrency)
	assert.Equal(t, 500*time.Millisecond, cfg.Tuning.Dedup.Window)
	assert.Equal(t, 100, cfg.Tuning.Dedup.MaxEntries)
}

func TestLoadConfig_MalformedTuningFile(t *testing.T) {
	dir := isolateEnv(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), []byte("model_timeout: [not a duration"), 0o600))

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse tuning file")
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"unknown provider":    {"MODEL_PROVIDER": "openai"},
		"gemini without key":  {"MODEL_PROVIDER": "gemini"},
		"redis without addr":  {"DEDUP_BACKEND": "redis"},
		"unknown dedup store": {"DEDUP_BACKEND": "memcached"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_InvalidTuning(t *testing.T) {
	cases := map[string]string{
		"zero concurrency": "tool_concurrency: 0",
		"negative timeout": "tool_timeout: -1s",
		"zero window":      "dedup:\n  window: 0s",
		"zero max entries": "dedup:\n  max_entries: 0",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			dir := isolateEnv(t)
			require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), []byte(body), 0o600))
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
