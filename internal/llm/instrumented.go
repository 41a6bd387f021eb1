package llm

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// InstrumentedClient times every call of the wrapped client and logs it.
type InstrumentedClient struct {
	next   LLMClient
	stats  *Stats
	logger *zap.Logger
	model  string
}

func NewInstrumentedClient(next LLMClient, stats *Stats, logger *zap.Logger, model string) *InstrumentedClient {
	return &InstrumentedClient{next: next, stats: stats, logger: logger, model: model}
}

func (c *InstrumentedClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	start := time.Now()
	resp, err := c.next.Generate(ctx, system, prompt)
	elapsed := time.Since(start)
	c.stats.Record(elapsed, err)

	fields := []zap.Field{
		zap.String("model", c.model),
		zap.Duration("duration", elapsed),
		zap.Int("prompt_bytes", len(prompt)),
	}
	if err != nil {
		c.logger.Warn("llm call failed", append(fields, zap.Error(err))...)
		return "", err
	}
	c.logger.Debug("llm call", append(fields, zap.Int("response_bytes", len(resp)))...)
	return resp, nil
}

func (c *InstrumentedClient) Stats() *Stats {
	return c.stats
}

func (c *InstrumentedClient) Model() string {
	return c.model
}
