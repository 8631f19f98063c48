package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"draft/internal/command"
	"draft/internal/config"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections file.md",
	Short: "List the sections defined in a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSections,
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	infos, err := command.Sections(args[0], cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, info := range infos {
		key := info.Key
		if key == "" {
			key = "(unnamed)"
		}
		fmt.Fprintf(out, "%s\t%d fragment(s)\n", key, info.Fragments)
	}
	return nil
}
