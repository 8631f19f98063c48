// Package markdown extracts fenced code blocks from a document, preserving
// the byte offset of each block's literal content so that positions inside a
// block can be reported relative to the document.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced code block. Text holds exactly the literal bytes
// between the fence lines; Start is the document byte offset of those bytes.
// Info is the fence's declared language tag, possibly empty.
type Block struct {
	Info  string
	Start int
	Text  string
}

// Blocks returns every fenced code block in the document, in document order.
// Filtering by language tag is the caller's concern.
func Blocks(src []byte) []Block {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	var blocks []Block
	//nolint:errcheck // the walker never returns an error
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fence, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		blocks = append(blocks, blockOf(fence, src))
		return ast.WalkSkipChildren, nil
	})
	return blocks
}

func blockOf(fence *ast.FencedCodeBlock, src []byte) Block {
	var info string
	if fence.Info != nil {
		info = strings.TrimSpace(string(fence.Info.Segment.Value(src)))
	}

	lines := fence.Lines()
	var body []byte
	start := 0
	switch {
	case lines.Len() > 0:
		start = lines.At(0).Start
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			body = append(body, src[seg.Start:seg.Stop]...)
		}
	case fence.Info != nil:
		// An empty block has no content lines; anchor it just past the
		// opening fence line.
		start = fence.Info.Segment.Stop
		if start < len(src) && src[start] == '\n' {
			start++
		}
	}

	return Block{Info: info, Start: start, Text: string(body)}
}
