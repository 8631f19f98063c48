// Package expand recursively substitutes section references in a built
// section table, producing output text plus an ordered list of soft errors.
// A missing top-level key is a hard failure; everything encountered during
// expansion itself (unterminated lexical items, undefined or cyclic nested
// references) is collected and never aborts the surrounding expansion.
package expand

import (
	"errors"
	"fmt"
	"strings"

	"draft/internal/scanner"
	"draft/internal/source"
	"draft/internal/web"
)

// ErrorKind classifies a soft failure.
type ErrorKind int

const (
	UnterminatedComment ErrorKind = iota
	UnterminatedString
	UnterminatedCharLiteral
	UnterminatedSectionName
	UndefinedSection
	CyclicSection
)

// Error is a soft failure recorded during expansion. Pos is
// document-relative. Detail carries the scanner's description of an
// unterminated item, or the section name for UndefinedSection and
// CyclicSection.
type Error struct {
	Pos    source.Position
	Kind   ErrorKind
	Detail string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %s", e.description(), e.Pos)
}

func (e *Error) description() string {
	switch e.Kind {
	case UndefinedSection:
		return fmt.Sprintf("undefined section %s", e.Detail)
	case CyclicSection:
		return fmt.Sprintf("cyclic section reference %s", e.Detail)
	default:
		return "unterminated " + e.Detail
	}
}

func kindOf(desc string) ErrorKind {
	switch desc {
	case "block comment":
		return UnterminatedComment
	case "section name":
		return UnterminatedSectionName
	case "character literal":
		return UnterminatedCharLiteral
	default: // "raw string", "double quote string"
		return UnterminatedString
	}
}

// Expander expands sections of a fully-built table. The table must not be
// mutated once expansion begins.
type Expander struct {
	table  *web.Table
	delims scanner.Delims
	errs   []*Error
}

func New(table *web.Table, delims scanner.Delims) *Expander {
	return &Expander{table: table, delims: delims}
}

// Errors returns the soft errors accumulated by the most recent Expand call,
// in the order they were encountered.
func (x *Expander) Errors() []*Error {
	return x.errs
}

// Expand produces the full expansion of the section named by the normalized
// key; the empty key expands the unnamed (root) fragments. A missing key is
// a hard failure and returns an error; soft failures are available from
// Errors afterward.
func (x *Expander) Expand(key string) (string, error) {
	x.errs = nil
	frags, ok := x.table.Fragments(key)
	if !ok {
		if key == "" {
			return "", errors.New("no unnamed fragments found")
		}
		return "", fmt.Errorf("section %s was never defined", key)
	}
	var out strings.Builder
	visiting := map[string]bool{key: true}
	for _, frag := range frags {
		x.fragment(&out, frag, visiting)
	}
	return out.String(), nil
}

func (x *Expander) fragment(out *strings.Builder, frag web.Fragment, visiting map[string]bool) {
	idx := source.NewLineIndex(frag.Body)
	sc := scanner.New(frag.Body, x.delims)
	for {
		c, ok := sc.Next()
		if !ok {
			break
		}
		switch c.Kind {
		case scanner.Text:
			out.WriteString(frag.Body[c.Lo:c.Hi])
		case scanner.Reference:
			x.substitute(out, frag, c, idx, visiting)
		case scanner.Unterminated:
			x.record(&Error{
				Pos:    idx.Position(c.Lo).InDocument(frag.Anchor),
				Kind:   kindOf(c.Desc),
				Detail: c.Desc,
			})
		}
	}
}

// substitute expands one reference in place. The substituted text is
// prefixed with a traceability marker: a line comment holding the reference
// exactly as written. Undefined and cyclic references leave the literal
// reference text in the output instead, so the surrounding expansion
// continues.
func (x *Expander) substitute(out *strings.Builder, frag web.Fragment, c scanner.Chunk, idx *source.LineIndex, visiting map[string]bool) {
	literal := frag.Body[c.Lo:c.Hi]
	name := web.Normalize(literal[len(string(x.delims.Open)) : len(literal)-len(string(x.delims.Close))])
	pos := idx.Position(c.Lo).InDocument(frag.Anchor)

	if visiting[name] {
		x.record(&Error{Pos: pos, Kind: CyclicSection, Detail: name})
		out.WriteString(literal)
		return
	}
	frags, ok := x.table.Fragments(name)
	if !ok {
		x.record(&Error{Pos: pos, Kind: UndefinedSection, Detail: name})
		out.WriteString(literal)
		return
	}

	out.WriteString("\n// ")
	out.WriteString(literal)
	out.WriteString("\n")
	visiting[name] = true
	for _, f := range frags {
		x.fragment(out, f, visiting)
	}
	delete(visiting, name)
}

func (x *Expander) record(err *Error) {
	x.errs = append(x.errs, err)
}
