package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"draft/internal/command"
	"draft/internal/config"
)

var (
	tangleSection string
	tangleOutput  string
)

var tangleCmd = &cobra.Command{
	Use:   "tangle [flags] file.md...",
	Short: "Expand a section of one or more Markdown documents",
	Long: `Tangle extracts the configured language's fenced code blocks from each
input, expands section references recursively, and writes the result to
stdout or to the configured output file. Problems found along the way
(unterminated lexical items, undefined sections) are reported on stderr;
output is still produced on a best-effort basis.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTangle,
}

func init() {
	tangleCmd.Flags().StringVarP(&tangleSection, "section", "s", "", "Section to expand (default is the unnamed root section)")
	tangleCmd.Flags().StringVarP(&tangleOutput, "output", "o", "", "Write output to `file` instead of stdout")
}

func runTangle(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if tangleOutput != "" {
		cfg.Output = tangleOutput
	}

	results, err := command.Tangle(args, tangleSection, cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	problems := 0
	warn := color.New(color.FgRed)
	for _, res := range results {
		if _, err := io.WriteString(out, res.Text); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
		for _, e := range res.Errs {
			warn.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", res.Path, e)
			problems++
		}
	}
	if problems > 0 {
		return fmt.Errorf("%d problem(s) found", problems)
	}
	return nil
}
