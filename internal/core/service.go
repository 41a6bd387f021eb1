package core

import (
	"context"
	"fmt"
	"time"

	"github.com/agenthands/smartform/internal/core/explain"
	"github.com/agenthands/smartform/internal/core/hierarchy"
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/agenthands/smartform/internal/core/normalize"
	"go.uber.org/zap"
)

// Service runs one SmartForm through normalization and the explanation
// engine. It holds no per-request state and is safe for concurrent use.
type Service struct {
	Engine  explain.Engine
	Logger  *zap.Logger
	Timeout time.Duration
}

func NewService(engine explain.Engine, logger *zap.Logger, timeout time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Engine:  engine,
		Logger:  logger,
		Timeout: timeout,
	}
}

// Explain makes exactly one engine call. Its failure fails the request; there
// is no retry and no partial result.
func (s *Service) Explain(ctx context.Context, form model.SmartForm) (*model.ExplainResponse, error) {
	res := normalize.Process(form.Nodes)
	s.Logger.Info("normalized smartform",
		zap.String("form", form.FormName),
		zap.Int("nodes", len(form.Nodes)),
		zap.Int("merged", len(res.Merged)),
		zap.String("page", res.PageName))

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	table, err := s.Engine.Explain(ctx, res.Merged, res.PageName)
	if err != nil {
		return nil, fmt.Errorf("failed to explain form %q: %w", form.FormName, err)
	}

	return &model.ExplainResponse{
		FormName:   form.FormName,
		System:     form.System,
		Client:     form.Client,
		FieldTable: table,
	}, nil
}

// Normalize returns the deterministic preview without calling the engine.
func (s *Service) Normalize(form model.SmartForm) model.NormalizeResponse {
	res := normalize.Process(form.Nodes)
	return model.NormalizeResponse{
		FormName:  form.FormName,
		PageName:  res.PageName,
		Nodes:     res.Merged,
		Hierarchy: hierarchy.Build(res.Merged, res.PageName),
	}
}
