// Package app wires configuration into a ready-to-use explanation service.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/agenthands/smartform/internal/config"
	"github.com/agenthands/smartform/internal/core"
	"github.com/agenthands/smartform/internal/core/explain"
	"github.com/agenthands/smartform/internal/llm"
	"github.com/agenthands/smartform/internal/logging"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const statsWindow = time.Hour

type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Stats   *llm.Stats
	Service *core.Service

	// LLM is the provider client underneath the instrumentation.
	LLM llm.LLMClient
}

// LoadConfig reads .env (if any), the TOML file at path (or CONFIG_PATH, or
// config/config.toml) and the environment overrides, then validates the result.
func LoadConfig(path string) (*config.Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.toml"
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// New builds the logger, the LLM client and the service from cfg.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	return NewWithLogger(ctx, cfg, logger)
}

func NewWithLogger(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*App, error) {
	client, err := llm.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}

	stats := llm.NewStats(statsWindow)
	instrumented := llm.NewInstrumentedClient(client, stats, logger, cfg.LLM.Model)
	engine := explain.NewLLMEngine(instrumented, cfg.Explain)

	return &App{
		Config:  cfg,
		Logger:  logger,
		Stats:   stats,
		Service: core.NewService(engine, logger, cfg.LLM.TimeoutDuration()),
		LLM:     client,
	}, nil
}

// Close releases the provider client when it holds connections (gemini).
func (a *App) Close() error {
	if c, ok := a.LLM.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
