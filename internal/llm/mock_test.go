package llm

import (
	"context"
	"time"
)

type MockLLMClient struct {
	Response string
	Err      error
	Delay    time.Duration

	LastSystem string
	LastPrompt string
}

func (m *MockLLMClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.LastSystem = system
	m.LastPrompt = prompt
	if m.Delay > 0 {
		time.Sleep(m.Delay)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
