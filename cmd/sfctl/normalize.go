package main

import (
	"github.com/agenthands/smartform/internal/core"
	"github.com/spf13/cobra"
)

func newNormalizeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "normalize FILE",
		Short: "Merge ITEM runs, resolve the page name and group windows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			form, err := readForm(args[0])
			if err != nil {
				return err
			}
			svc := core.NewService(nil, nil, 0)
			return render(cmd.OutOrStdout(), opts.output, svc.Normalize(form))
		},
	}
}
