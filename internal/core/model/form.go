package model

import (
	"fmt"
	"strings"
)

// SmartForm is a validated extraction request.
type SmartForm struct {
	FormName    string `json:"formName" yaml:"formName"`
	System      string `json:"system" yaml:"system"`
	Client      string `json:"client" yaml:"client"`
	Language    string `json:"language" yaml:"language"`
	SourceKind  string `json:"sourceKind" yaml:"sourceKind"`
	ExtractedAt string `json:"extractedat" yaml:"extractedat"`
	Nodes       []Node `json:"nodes" yaml:"nodes"`
}

// ExplainResponse is what the API returns. FieldTable is the explanation
// engine's result, passed through untouched.
type ExplainResponse struct {
	FormName   string `json:"formName" yaml:"formName"`
	System     string `json:"system" yaml:"system"`
	Client     string `json:"client" yaml:"client"`
	FieldTable any    `json:"field_table" yaml:"field_table"`
}

// NormalizeResponse is the deterministic part of the pipeline, without the
// explanation call.
type NormalizeResponse struct {
	FormName  string   `json:"formName" yaml:"formName"`
	PageName  string   `json:"pageName" yaml:"pageName"`
	Nodes     []Node   `json:"nodes" yaml:"nodes"`
	Hierarchy PageTree `json:"hierarchy" yaml:"hierarchy"`
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"loc"`
	Reason string `json:"msg"`
}

// ValidationError is raised at the boundary for malformed input records.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Field, f.Reason))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
