// Package command implements the operations behind the CLI: tangling one or
// more documents, listing their sections, and watching inputs for changes.
package command

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"draft/internal/config"
	"draft/internal/expand"
	"draft/internal/markdown"
	"draft/internal/source"
	"draft/internal/web"
)

// Result is the outcome of tangling one document. Errs holds the soft
// errors; Text is the best-effort output even when Errs is non-empty.
type Result struct {
	Path string
	Text string
	Errs []*expand.Error
}

// Tangle expands the given section of each input document and returns the
// results in input order. Documents are independent, so they are tangled
// concurrently; a hard failure in any of them fails the whole call.
func Tangle(paths []string, section string, cfg config.Config) ([]Result, error) {
	results := make([]Result, len(paths))
	var g errgroup.Group
	for i, path := range paths {
		g.Go(func() error {
			res, err := tangleFile(path, section, cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func tangleFile(path, section string, cfg config.Config) (Result, error) {
	table, err := buildTable(path, cfg)
	if err != nil {
		return Result{}, err
	}
	x := expand.New(table, cfg.Delims())
	text, err := x.Expand(section)
	if err != nil {
		return Result{}, err
	}
	slog.Debug("tangled", "path", path, "section", section, "bytes", len(text), "problems", len(x.Errors()))
	return Result{Path: path, Text: text, Errs: x.Errors()}, nil
}

func buildTable(path string, cfg config.Config) (*web.Table, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	blocks := markdown.Blocks(text)
	idx := source.NewLineIndex(string(text))
	return web.Build(blocks, idx, cfg.Language, cfg.Delims()), nil
}

// SectionInfo describes one section of a document.
type SectionInfo struct {
	Key       string
	Fragments int
}

// Sections lists a document's section keys in order of first appearance,
// with their fragment counts.
func Sections(path string, cfg config.Config) ([]SectionInfo, error) {
	table, err := buildTable(path, cfg)
	if err != nil {
		return nil, err
	}
	var infos []SectionInfo
	for _, key := range table.Keys() {
		frags, _ := table.Fragments(key)
		infos = append(infos, SectionInfo{Key: key, Fragments: len(frags)})
	}
	return infos, nil
}

// BlockInfo describes one fenced block of a document, for debug listings.
type BlockInfo struct {
	Info      string
	Pos       source.Position
	Key       string
	Continues bool
	Named     bool
}

// Blocks lists every fenced block in the document with the key it would
// contribute to, regardless of language tag.
func Blocks(path string, cfg config.Config) ([]BlockInfo, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}
	idx := source.NewLineIndex(string(text))
	var infos []BlockInfo
	for _, b := range markdown.Blocks(text) {
		key, continues, named := web.ParseHeader(b.Text, cfg.Delims())
		infos = append(infos, BlockInfo{
			Info:      b.Info,
			Pos:       idx.Position(b.Start),
			Key:       key,
			Continues: continues,
			Named:     named,
		})
	}
	return infos, nil
}
