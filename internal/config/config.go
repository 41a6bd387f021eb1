package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

const (
	ModeTree = "tree"
	ModeRows = "rows"
)

type ServerConfig struct {
	Port string `toml:"port"`
}

type LLMConfig struct {
	Provider    string  `toml:"provider"`
	Model       string  `toml:"model"`
	APIKey      string  `toml:"api_key"`
	BaseURL     string  `toml:"base_url"`
	Temperature float32 `toml:"temperature"`
	Timeout     string  `toml:"timeout"`
}

// TimeoutDuration parses Timeout. Validate guarantees it parses.
func (c LLMConfig) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

type ExplainPrompts struct {
	Mode   string `toml:"mode"`
	System string `toml:"system"`
	Tree   string `toml:"tree"`
	Rows   string `toml:"rows"`
}

type ConcurrencyConfig struct {
	Explain int `toml:"explain"`
}

type LoggingConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type Config struct {
	Server      ServerConfig      `toml:"server"`
	LLM         LLMConfig         `toml:"llm"`
	Explain     ExplainPrompts    `toml:"explain"`
	Concurrency ConcurrencyConfig `toml:"concurrency"`
	Logging     LoggingConfig     `toml:"logging"`
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: "8080"},
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o",
			Timeout:  "120s",
		},
		Explain: ExplainPrompts{
			Mode:   ModeTree,
			System: defaultSystemPrompt,
			Tree:   defaultTreePrompt,
			Rows:   defaultRowsPrompt,
		},
		Concurrency: ConcurrencyConfig{Explain: 4},
		Logging:     LoggingConfig{Level: "info"},
	}
}

// Load reads a TOML file on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault behaves like Load but falls back to the defaults when the
// file does not exist. Environment overrides are applied either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overrides file values with environment variables when present.
func (c *Config) ApplyEnv() {
	override := func(dst *string, keys ...string) {
		for _, k := range keys {
			if v := os.Getenv(k); v != "" {
				*dst = v
				return
			}
		}
	}

	override(&c.Server.Port, "PORT")
	override(&c.LLM.Provider, "LLM_PROVIDER")
	override(&c.LLM.Model, "LLM_MODEL", "OPENAI_MODEL")
	override(&c.LLM.APIKey, "LLM_API_KEY", "OPENAI_API_KEY")
	override(&c.LLM.BaseURL, "LLM_BASE_URL")
	override(&c.LLM.Timeout, "LLM_TIMEOUT")
	override(&c.Explain.Mode, "EXPLAIN_MODE")
	override(&c.Logging.Level, "LOG_LEVEL")
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.LLM.Provider) {
	case "openai", "claude", "gemini", "ollama":
	default:
		return fmt.Errorf("unsupported llm provider: %q", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("llm model is required")
	}
	d, err := time.ParseDuration(c.LLM.Timeout)
	if err != nil {
		return fmt.Errorf("invalid llm timeout %q: %w", c.LLM.Timeout, err)
	}
	if d <= 0 {
		return fmt.Errorf("llm timeout must be positive, got %s", d)
	}
	switch c.Explain.Mode {
	case ModeTree:
		if err := checkPrompt("explain.tree", c.Explain.Tree, 2); err != nil {
			return err
		}
	case ModeRows:
		if err := checkPrompt("explain.rows", c.Explain.Rows, 1); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported explain mode: %q", c.Explain.Mode)
	}
	if c.Concurrency.Explain <= 0 {
		c.Concurrency.Explain = 1
	}
	return nil
}

// checkPrompt requires a non-empty template with exactly want %s verbs.
func checkPrompt(key, template string, want int) error {
	if strings.TrimSpace(template) == "" {
		return fmt.Errorf("%s prompt is required", key)
	}
	if got := strings.Count(template, "%s"); got != want {
		return fmt.Errorf("%s prompt must contain %d %%s placeholders, found %d", key, want, got)
	}
	return nil
}
