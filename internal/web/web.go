// Package web builds the section table of a literate document: the mapping
// from normalized section name to the ordered fragments that define it. The
// empty key holds the unnamed (root) fragments.
package web

import (
	"regexp"
	"strings"

	"draft/internal/markdown"
	"draft/internal/scanner"
	"draft/internal/source"
)

// Fragment is one code block's contribution to a section. Body is immutable
// once built; Anchor is the document position of Body's first byte.
// Continues records the continuation flag from the definition header; it has
// no effect on accumulation, which always appends.
type Fragment struct {
	Body      string
	Anchor    source.Position
	Continues bool
}

// Table maps normalized section keys to their fragments in document order.
// It is append-only while Build runs and read-only afterward.
type Table struct {
	sections map[string][]Fragment
	keys     []string // section keys in order of first appearance
}

// Build assembles the table from a document's code blocks, consuming only
// blocks whose info tag equals lang. Block offsets are translated to anchors
// through idx, which must index the same document the blocks came from.
func Build(blocks []markdown.Block, idx *source.LineIndex, lang string, delims scanner.Delims) *Table {
	t := &Table{sections: make(map[string][]Fragment)}
	header := headerPattern(delims)
	for _, block := range blocks {
		if block.Info != lang {
			continue
		}
		key, frag := splitHeader(block, header, idx)
		t.add(key, frag)
	}
	return t
}

func (t *Table) add(key string, frag Fragment) {
	if _, ok := t.sections[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.sections[key] = append(t.sections[key], frag)
}

// Fragments returns the fragment list for a normalized key.
func (t *Table) Fragments(key string) ([]Fragment, bool) {
	frags, ok := t.sections[key]
	return frags, ok
}

// Keys returns the section keys in order of first appearance in the
// document.
func (t *Table) Keys() []string {
	return t.keys
}

// A definition header sits at the very start of a block: optional leading
// whitespace, the section name in reference delimiters, an optional
// continuation flag, the definition marker, and optional trailing horizontal
// whitespace. (?s) lets the name itself span lines; normalization collapses
// the line breaks afterward.
func headerPattern(d scanner.Delims) *regexp.Regexp {
	return regexp.MustCompile(`(?s)^\s*` +
		regexp.QuoteMeta(string(d.Open)) + `(.*?)` + regexp.QuoteMeta(string(d.Close)) +
		`(` + regexp.QuoteMeta(string(d.Continue)) + `?)` +
		regexp.QuoteMeta(string(d.Define)) + `[ \t\r]*`)
}

// splitHeader matches the definition header at the start of a block. On a
// match the remainder becomes the fragment body, minus exactly one
// immediately following newline if present; without a header the whole block
// is an unnamed fragment.
func splitHeader(block markdown.Block, header *regexp.Regexp, idx *source.LineIndex) (string, Fragment) {
	body := block.Text
	key := ""
	continues := false
	consumed := 0
	if m := header.FindStringSubmatchIndex(body); m != nil {
		key = Normalize(body[m[2]:m[3]])
		continues = m[5] > m[4]
		consumed = m[1]
		if consumed < len(body) && body[consumed] == '\n' {
			consumed++
		}
		body = block.Text[consumed:]
	}
	return key, Fragment{
		Body:      body,
		Anchor:    idx.Position(block.Start + consumed),
		Continues: continues,
	}
}

// ParseHeader reports the definition header of a raw fragment body, if any.
// It is used by debug listings that want to show how a block would be keyed
// without building a full table.
func ParseHeader(body string, delims scanner.Delims) (key string, continues bool, ok bool) {
	m := headerPattern(delims).FindStringSubmatchIndex(body)
	if m == nil {
		return "", false, false
	}
	return Normalize(body[m[2]:m[3]]), m[5] > m[4], true
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Normalize trims leading and trailing whitespace from a section name and
// collapses internal whitespace runs to single spaces.
func Normalize(name string) string {
	return whitespaceRun.ReplaceAllString(strings.TrimSpace(name), " ")
}
