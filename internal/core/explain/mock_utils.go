package explain

import (
	"context"

	"github.com/agenthands/smartform/internal/core/model"
)

type MockLLMClient struct {
	Response string
	Err      error

	LastSystem string
	LastPrompt string
}

func (m *MockLLMClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	m.LastSystem = system
	m.LastPrompt = prompt
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}

// MockEngine records what it was asked to explain.
type MockEngine struct {
	Result any
	Err    error

	Calls    int
	Nodes    []model.Node
	PageName string
}

func (m *MockEngine) Explain(ctx context.Context, nodes []model.Node, pageName string) (any, error) {
	m.Calls++
	m.Nodes = nodes
	m.PageName = pageName
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Result, nil
}
