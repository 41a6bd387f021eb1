package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/agenthands/smartform/internal/app"
	"github.com/agenthands/smartform/internal/config"
	"github.com/agenthands/smartform/internal/core"
	"github.com/agenthands/smartform/internal/core/explain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const sampleForm = `{
	"formName": "ZINVOICE",
	"system": "PRD",
	"client": "100",
	"sourceKind": "SMARTFORM",
	"extractedat": "2025-01-01T00:00:00Z",
	"nodes": [
		{"id": 1, "parentId": 0, "depth": 0, "path": "/PAGE", "elemName": "PAGE", "nodeType": "PA", "attributes": [{"name": "iname", "value": "FIRST"}]},
		{"id": 2, "parentId": 1, "depth": 1, "path": "/PAGE/WINDOW", "elemName": "WINDOW", "nodeType": "WI"},
		{"id": 3, "parentId": 2, "depth": 2, "path": "/PAGE/WINDOW/ITEM[1]", "elemName": "ITEM", "textPayload": "A"},
		{"id": 4, "parentId": 2, "depth": 2, "path": "/PAGE/WINDOW/ITEM[2]", "elemName": "ITEM", "textPayload": "B"}
	]
}`

func writeForm(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "form.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.toml"))
	for _, k := range []string{"LLM_PROVIDER", "LLM_MODEL", "OPENAI_MODEL", "LLM_TIMEOUT", "EXPLAIN_MODE", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNormalize_JSON(t *testing.T) {
	out, err := run(t, "normalize", writeForm(t, sampleForm))
	require.NoError(t, err)

	var got struct {
		PageName  string `json:"pageName"`
		Nodes     []any  `json:"nodes"`
		Hierarchy struct {
			Windows []struct {
				Elements []struct {
					TextPayload string `json:"textPayload"`
				} `json:"elements"`
			} `json:"windows"`
		} `json:"hierarchy"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "FIRST", got.PageName)
	assert.Len(t, got.Nodes, 3)
	require.Len(t, got.Hierarchy.Windows, 1)
	require.Len(t, got.Hierarchy.Windows[0].Elements, 1)
	assert.Equal(t, "A\nB", got.Hierarchy.Windows[0].Elements[0].TextPayload)
}

func TestNormalize_YAML(t *testing.T) {
	out, err := run(t, "normalize", "-o", "yaml", writeForm(t, sampleForm))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ZINVOICE", got["formName"])
	assert.Equal(t, "FIRST", got["pageName"])
}

func TestNormalize_Errors(t *testing.T) {
	t.Run("invalid form", func(t *testing.T) {
		_, err := run(t, "normalize", writeForm(t, `{"formName": ""}`))
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := run(t, "normalize", filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
	t.Run("bad output format", func(t *testing.T) {
		_, err := run(t, "normalize", "-o", "xml", writeForm(t, sampleForm))
		assert.ErrorContains(t, err, "unsupported output format")
	})
	t.Run("no args", func(t *testing.T) {
		_, err := run(t, "normalize")
		assert.Error(t, err)
	})
}

func testApp(engine explain.Engine, limit int) *app.App {
	cfg := config.Default()
	cfg.Concurrency.Explain = limit
	return &app.App{
		Config:  cfg,
		Logger:  zap.NewNop(),
		Service: core.NewService(engine, zap.NewNop(), 0),
	}
}

func TestExplainAll_KeepsOrder(t *testing.T) {
	engine := &explain.MockEngine{Result: []any{}}
	a := testApp(engine, 1)

	first := writeForm(t, sampleForm)
	second := writeForm(t, `{
		"formName": "ZDELIVERY", "system": "QAS", "client": "200", "sourceKind": "SMARTFORM",
		"extractedat": "2025-01-01T00:00:00Z", "nodes": []
	}`)

	results, err := explainAll(context.Background(), a, []string{first, second})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "ZINVOICE", results[0].FormName)
	assert.Equal(t, "ZDELIVERY", results[1].FormName)
	assert.Equal(t, 2, engine.Calls)
}

func TestExplainAll_FirstFailureAborts(t *testing.T) {
	a := testApp(&explain.MockEngine{Err: errors.New("boom")}, 2)

	_, err := explainAll(context.Background(), a, []string{writeForm(t, sampleForm)})
	assert.ErrorContains(t, err, "boom")
}
