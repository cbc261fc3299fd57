package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "")
	t.Setenv("ANALYSIS_WORKERS", "")
	t.Setenv("MODEL_BACKEND", "")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.AnalysisWorkers)
	assert.Equal(t, BackendHuggingFace, cfg.ModelBackend)
	assert.True(t, cfg.ReadabilityFallback)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("ANALYSIS_WORKERS", "8")
	t.Setenv("MODEL_BACKEND", "HUGOT")
	t.Setenv("READABILITY_FALLBACK", "false")
	t.Setenv("VALKEY_TLS", "true")

	cfg := Load()

	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 8, cfg.AnalysisWorkers)
	assert.Equal(t, BackendHugot, cfg.ModelBackend)
	assert.False(t, cfg.ReadabilityFallback)
	assert.True(t, cfg.ValkeyTLS)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("ANALYSIS_WORKERS", "-2")

	cfg := Load()

	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 4, cfg.AnalysisWorkers)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.test"), []byte("SLANTSCOPE_TEST_KEY=from-file\n"), 0o600))
	t.Setenv("ENV_DIR", dir)
	t.Setenv("SLANTSCOPE_TEST_KEY", "")
	os.Unsetenv("SLANTSCOPE_TEST_KEY")

	assert.True(t, LoadEnv("test"))
	assert.Equal(t, "from-file", os.Getenv("SLANTSCOPE_TEST_KEY"))
	assert.False(t, LoadEnv("missing"))
}
