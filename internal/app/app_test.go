package app

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/agenthands/smartform/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithLogger(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "sk-test"

	a, err := NewWithLogger(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, a.Service)
	assert.NotNil(t, a.Stats)
	assert.Equal(t, cfg.LLM.TimeoutDuration(), a.Service.Timeout)
	assert.NoError(t, a.Close())
}

type closingClient struct {
	closed int
	err    error
}

func (c *closingClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	return "", nil
}

func (c *closingClient) Close() error {
	c.closed++
	return c.err
}

func TestClose(t *testing.T) {
	client := &closingClient{}
	a := &App{LLM: client}
	require.NoError(t, a.Close())
	assert.Equal(t, 1, client.closed)

	client.err = errors.New("already closed")
	assert.EqualError(t, a.Close(), "already closed")
}

func TestClose_GeminiClient(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "gemini"
	cfg.LLM.Model = "gemini-1.5-flash"
	cfg.LLM.APIKey = "test-key"

	a, err := NewWithLogger(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	_, ok := a.LLM.(io.Closer)
	assert.True(t, ok, "gemini client should be closable")
	assert.NoError(t, a.Close())
}

func TestClose_NoClient(t *testing.T) {
	assert.NoError(t, (&App{}).Close())
}

func TestNewWithLogger_BadProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.Provider = "bard"
	_, err := NewWithLogger(context.Background(), cfg, zap.NewNop())
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[llm]\nprovider = \"ollama\"\nmodel = \"llama3\"\n"), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("LLM_PROVIDER", "")
	t.Setenv("LLM_MODEL", "")
	t.Setenv("OPENAI_MODEL", "")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("EXPLAIN_MODE", "prose")

	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_ExplicitPathWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = \"9191\"\n"), 0o600))
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "other.toml"))
	t.Setenv("PORT", "")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "9191", cfg.Server.Port)
}
