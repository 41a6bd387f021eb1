// Package explain turns normalized SmartForm nodes into mapping, coding and
// usage prose through an LLM.
package explain

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/agenthands/smartform/internal/config"
	"github.com/agenthands/smartform/internal/core/common"
	"github.com/agenthands/smartform/internal/core/hierarchy"
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/agenthands/smartform/internal/llm"
)

// ErrExplanation marks every failure of the explanation engine. Callers
// treat it as terminal for the request.
var ErrExplanation = errors.New("explanation failed")

// Engine explains merged nodes under a resolved page name. The result is an
// opaque JSON-shaped value handed back to the caller unmodified.
type Engine interface {
	Explain(ctx context.Context, nodes []model.Node, pageName string) (any, error)
}

type LLMEngine struct {
	LLM     llm.LLMClient
	Prompts config.ExplainPrompts
}

func NewLLMEngine(llmClient llm.LLMClient, prompts config.ExplainPrompts) *LLMEngine {
	return &LLMEngine{
		LLM:     llmClient,
		Prompts: prompts,
	}
}

func (e *LLMEngine) Explain(ctx context.Context, nodes []model.Node, pageName string) (any, error) {
	if e.Prompts.Mode == config.ModeRows {
		return e.explainRows(ctx, nodes)
	}
	return e.explainTree(ctx, nodes, pageName)
}

func (e *LLMEngine) explainTree(ctx context.Context, nodes []model.Node, pageName string) (any, error) {
	tree := hierarchy.Build(nodes, pageName)
	prompt, err := BuildTreePrompt(e.Prompts.Tree, tree)
	if err != nil {
		return nil, err
	}

	response, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	result, err := parseTree(response)
	if err != nil {
		return nil, err
	}
	if err := hierarchy.Verify(result, tree); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExplanation, err)
	}
	return result, nil
}

func (e *LLMEngine) explainRows(ctx context.Context, nodes []model.Node) (any, error) {
	prompt, err := BuildRowsPrompt(e.Prompts.Rows, hierarchy.Rows(nodes))
	if err != nil {
		return nil, err
	}

	response, err := e.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	result, err := common.ParseJSON[any](response)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExplanation, err)
	}
	if _, ok := result.([]any); !ok {
		return nil, fmt.Errorf("%w: expected a JSON array of rows, got %T", ErrExplanation, result)
	}
	return result, nil
}

func (e *LLMEngine) generate(ctx context.Context, prompt string) (string, error) {
	response, err := e.LLM.Generate(ctx, e.Prompts.System, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrExplanation, err)
	}
	return response, nil
}

// parseTree prefers the page object; a bare row array is the fallback.
func parseTree(response string) (any, error) {
	if page, err := common.ParseJSON[map[string]any](response); err == nil {
		return page, nil
	}
	result, err := common.ParseJSON[any](response)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExplanation, err)
	}
	return result, nil
}

// BuildTreePrompt fills the tree template with the JSON-quoted page name and
// the indented page skeleton.
func BuildTreePrompt(template string, tree model.PageTree) (string, error) {
	name, err := marshal(tree.PageName, "")
	if err != nil {
		return "", err
	}
	body, err := marshal(tree, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize page tree: %w", err)
	}
	return fmt.Sprintf(template, name, body), nil
}

func BuildRowsPrompt(template string, rows []model.FieldRow) (string, error) {
	body, err := marshal(rows, "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize nodes: %w", err)
	}
	return fmt.Sprintf(template, body), nil
}

// marshal encodes v without escaping '&', '<' and '>', which appear in
// SmartForm symbols such as &VBDKR-VBELN&.
func marshal(v any, indent string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
