package source

import (
	"fmt"
	"sort"
	"strings"
)

// Position is a location within a text buffer. Line is the 0-based line
// index; Col is the byte offset from the start of that line.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, col %d", p.Line, p.Col)
}

// InDocument translates a fragment-relative position into a document
// position given the document position of the fragment's first byte. Only
// the fragment's first line is shifted by the anchor's column; subsequent
// lines start at column 0 of their own document lines.
func (p Position) InDocument(anchor Position) Position {
	if p.Line == 0 {
		return Position{Line: anchor.Line, Col: anchor.Col + p.Col}
	}
	return Position{Line: anchor.Line + p.Line, Col: p.Col}
}

// LineIndex maps byte offsets in a text buffer to line/column positions. It
// precomputes the offset of every newline so that queries may arrive in any
// order.
type LineIndex struct {
	newlines []int
}

func NewLineIndex(text string) *LineIndex {
	var newlines []int
	for off := 0; ; {
		i := strings.IndexByte(text[off:], '\n')
		if i < 0 {
			break
		}
		newlines = append(newlines, off+i)
		off += i + 1
	}
	return &LineIndex{newlines: newlines}
}

// Position returns the line and column of the given byte offset. A line's
// terminating newline belongs to that line, not the next. Offsets at or past
// the end of the text map to positions as if the text continued indefinitely
// on its last line.
func (x *LineIndex) Position(offset int) Position {
	line := sort.SearchInts(x.newlines, offset)
	start := 0
	if line > 0 {
		start = x.newlines[line-1] + 1
	}
	return Position{Line: line, Col: offset - start}
}
