package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draft/internal/command"
	"draft/internal/config"
)

var blocksCmd = &cobra.Command{
	Use:   "blocks file.md",
	Short: "Show every fenced code block a document contains",
	Long: `Blocks is a debugging aid: it lists each fenced block with its language
tag, document position, and the section key it would contribute to,
including blocks whose tag does not match the configured language.`,
	Args: cobra.ExactArgs(1),
	RunE: runBlocks,
}

func runBlocks(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	infos, err := command.Blocks(args[0], cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, info := range infos {
		tag := info.Info
		if tag == "" {
			tag = "(none)"
		}
		key := "(unnamed)"
		if info.Named {
			key = info.Key
			if info.Continues {
				key += " (continued)"
			}
		}
		fmt.Fprintf(out, "%s\t%s\t%s\n", tag, info.Pos, key)
	}
	return nil
}
