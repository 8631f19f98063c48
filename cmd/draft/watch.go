package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"draft/internal/command"
	"draft/internal/config"
)

var (
	watchSection string
	watchOutput  string
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] file.md...",
	Short: "Re-tangle whenever an input changes",
	Long: `Watch tangles the inputs once, then re-tangles them each time one of them
is written. Results go to the output file when one is configured, otherwise
to stdout. Interrupt to stop.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchSection, "section", "s", "", "Section to expand (default is the unnamed root section)")
	watchCmd.Flags().StringVarP(&watchOutput, "output", "o", "", "Write output to `file` instead of stdout")
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if watchOutput != "" {
		cfg.Output = watchOutput
	}

	emit := func(results []command.Result, err error) {
		if err != nil {
			color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
			return
		}
		if err := writeResults(cmd, cfg, results); err != nil {
			color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), err)
		}
	}

	results, err := command.Tangle(args, watchSection, cfg)
	emit(results, err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return command.Watch(ctx, args, watchSection, cfg, emit)
}

func writeResults(cmd *cobra.Command, cfg config.Config, results []command.Result) error {
	out := cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	warn := color.New(color.FgRed)
	for _, res := range results {
		if _, err := io.WriteString(out, res.Text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		for _, e := range res.Errs {
			warn.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Path, e)
		}
	}
	return nil
}
