package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

const claudeMaxTokens = 8192

type ClaudeClient struct {
	client      *anthropic.Client
	model       string
	temperature float32
}

func NewClaudeClient(apiKey string, model string, baseURL string, temperature float32) *ClaudeClient {
	var opts []anthropic.ClientOption
	if baseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(baseURL))
	}

	return &ClaudeClient{
		client:      anthropic.NewClient(apiKey, opts...),
		model:       model,
		temperature: temperature,
	}
}

func (c *ClaudeClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	temperature := c.temperature
	resp, err := c.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:  anthropic.Model(c.model),
		System: system,
		Messages: []anthropic.Message{
			{
				Role: anthropic.RoleUser,
				Content: []anthropic.MessageContent{
					anthropic.NewTextMessageContent(prompt),
				},
			},
		},
		MaxTokens:   claudeMaxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return "", err
	}

	for _, part := range resp.Content {
		if part.Text != nil {
			return *part.Text, nil
		}
	}
	return "", fmt.Errorf("no response content")
}
