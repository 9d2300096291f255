// Package cli wires the describe command line tool.
package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/askiada/go-describe/internal/config"
	"github.com/askiada/go-describe/internal/logging"
	"github.com/askiada/go-describe/internal/report"
	"github.com/askiada/go-describe/pkg/dataset"
)

// app is the state shared by the sub commands once the configuration is loaded.
type app struct {
	viper      *viper.Viper
	configPath string
	cfg        *config.Config
	logger     *slog.Logger
	stdout     io.Writer
	stderr     io.Writer
}

// NewRootCommand returns the describe command. Results go to stdout, logs to stderr.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	a := &app{viper: viper.New(), stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "describe",
		Short: "Probability queries and descriptive statistics for CSV datasets",
		Long: `describe answers probability questions about binomial, uniform and normal distributions
and computes descriptive statistics of CSV files.

Settings are read from --config (or ./describe.yaml), then DESCRIBE_* environment variables,
then flags.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "configuration file")
	flags.StringP(config.KeyOutput, "o", string(report.Text), "output format: text, yaml or json")
	flags.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	flags.String(config.KeyDelimiter, ",", `csv field delimiter, "tab" for tabulations`)
	flags.Int(config.KeyConcurrency, 1, "goroutines per profiling stage")
	flags.StringSlice(config.KeyNaValues, dataset.DefaultNaValues, "cells read as missing values")
	flags.String(config.KeyGraph, "", "write the profiling stream topology as DOT to this file")

	root.AddCommand(
		a.distCommand(),
		a.fitCommand(),
		a.zscoreCommand(),
		a.summaryCommand(),
		a.countsCommand(),
		a.crosstabCommand(),
		a.corrCommand(),
		a.groupbyCommand(),
		a.pivotCommand(),
		a.joinCommand(),
	)

	return root
}

// Execute runs the describe command with args.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := NewRootCommand(stdout, stderr)
	root.SetArgs(args)

	return root.ExecuteContext(ctx)
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	err := config.BindFlags(a.viper, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}

	a.cfg, err = config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}

	a.logger, err = logging.New(a.stderr, a.cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger.Debug("configuration loaded", "command", cmd.Name(), "output", a.cfg.Output, "concurrency", a.cfg.Concurrency)

	return nil
}

func (a *app) render(v any) error {
	return errors.Wrap(report.Render(a.stdout, a.cfg.Format(), v), "unable to render result")
}

func (a *app) loadDataset(path string) (*dataset.Dataset, error) {
	ds, err := dataset.Load(path,
		dataset.WithDelimiter(a.cfg.DelimiterRune()),
		dataset.WithNaValues(a.cfg.NaValues),
	)
	if err != nil {
		return nil, err
	}

	rows, cols := ds.Dims()
	a.logger.Debug("dataset loaded", "path", path, "rows", rows, "columns", cols)

	return ds, nil
}
