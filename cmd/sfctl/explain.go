package main

import (
	"context"

	"github.com/agenthands/smartform/internal/app"
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newExplainCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "explain FILE...",
		Short: "Explain one or more forms with the configured LLM",
		Long: `Each file gets exactly one LLM call. Files are processed concurrently,
at most concurrency.explain at a time. The first failure aborts the run.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app.New(cmd.Context(), opts.cfg)
			if err != nil {
				return err
			}
			defer func() { _ = a.Logger.Sync() }()
			defer func() {
				if err := a.Close(); err != nil {
					a.Logger.Warn("failed to close llm client", zap.Error(err))
				}
			}()

			results, err := explainAll(cmd.Context(), a, args)
			if err != nil {
				return err
			}
			for _, r := range results {
				if err := render(cmd.OutOrStdout(), opts.output, r); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

// explainAll keeps results in argument order.
func explainAll(ctx context.Context, a *app.App, paths []string) ([]*model.ExplainResponse, error) {
	results := make([]*model.ExplainResponse, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.Config.Concurrency.Explain)
	for i, path := range paths {
		g.Go(func() error {
			form, err := readForm(path)
			if err != nil {
				return err
			}
			resp, err := a.Service.Explain(ctx, form)
			if err != nil {
				a.Logger.Error("explain failed", zap.String("file", path), zap.Error(err))
				return err
			}
			results[i] = resp
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
