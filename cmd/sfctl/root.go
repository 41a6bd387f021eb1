package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/agenthands/smartform/internal/app"
	"github.com/agenthands/smartform/internal/config"
	"github.com/agenthands/smartform/internal/core/model"
	"github.com/agenthands/smartform/internal/server"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type options struct {
	configPath string
	output     string
	verbose    bool

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "sfctl",
		Short: "Normalize and explain extracted SAP SmartForm node lists",
		Long: `sfctl works on the JSON node lists produced by the SmartForm extractor.

  normalize  merges ITEM runs, resolves the page name and shows the
             page -> window -> element grouping, offline
  explain    additionally asks the configured LLM for mapping, coding
             and usage of every element`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.output != "json" && opts.output != "yaml" {
				return fmt.Errorf("unsupported output format %q (want json or yaml)", opts.output)
			}
			cfg, err := app.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			if opts.verbose {
				cfg.Logging.Level = "debug"
			}
			opts.cfg = cfg
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config TOML (default $CONFIG_PATH or config/config.toml)")
	root.PersistentFlags().StringVarP(&opts.output, "output", "o", "json", "output format: json or yaml")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newNormalizeCmd(opts), newExplainCmd(opts))
	return root
}

func readForm(path string) (model.SmartForm, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.SmartForm{}, err
	}
	defer f.Close()

	form, err := server.DecodeSmartForm(f)
	if err != nil {
		return model.SmartForm{}, fmt.Errorf("%s: %w", path, err)
	}
	return form, nil
}

func render(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
