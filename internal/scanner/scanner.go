// Package scanner locates section references inside fragments of
// target-language source text. It is not a general-purpose lexer: it
// recognizes just enough of the language's lexical structure (comments,
// string and character literals) to know when a reference delimiter is real
// and when it is inert text inside a literal or comment.
package scanner

import (
	"fmt"
	"strings"
)

// Delims are the glyphs that mark section references and definitions. Open
// and Close are significant to the scanner; Define and Continue appear only
// in definition headers. Open, Close, and Define must be code points that
// cannot occur as ordinary tokens of the target language.
type Delims struct {
	Open     rune
	Close    rune
	Define   rune
	Continue rune
}

// Kind classifies a scanned chunk.
type Kind int

const (
	// Text is plain content to be copied verbatim, including comments and
	// string literals that were consumed whole.
	Text Kind = iota
	// Reference is a section reference, spanning both delimiters inclusive.
	Reference
	// Unterminated is a lexical item left open at a point where its closer
	// was required; Desc names the item.
	Unterminated
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case Reference:
		return "Reference"
	case Unterminated:
		return "Unterminated"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Chunk is a half-open byte range [Lo, Hi) within the scanned fragment.
// Chunks from one scan are non-overlapping, gap-free, and increasing in Lo.
type Chunk struct {
	Lo   int
	Hi   int
	Kind Kind
	Desc string // set only for Unterminated chunks
}

// Scanner walks one fragment of source text with a single forward-only
// cursor; there is no backtracking.
type Scanner struct {
	src    string
	off    int
	open   string // UTF-8 encoding of the reference-opening delimiter
	close  string // UTF-8 encoding of the reference-closing delimiter
	queued *Chunk
}

func New(src string, delims Delims) *Scanner {
	return &Scanner{
		src:   src,
		open:  string(delims.Open),
		close: string(delims.Close),
	}
}

// Next returns the next chunk at or after the cursor, or ok=false once the
// cursor has reached the end of the fragment. Consecutive plain content
// coalesces into a single Text chunk ending at the next reference,
// unterminated item, or end of fragment.
func (s *Scanner) Next() (Chunk, bool) {
	if s.queued != nil {
		c := *s.queued
		s.queued = nil
		return c, true
	}
	if s.off >= len(s.src) {
		return Chunk{}, false
	}
	start := s.off
	c, found := s.scan()
	if found {
		if c.Lo > start {
			s.queued = &c
			return Chunk{Lo: start, Hi: c.Lo, Kind: Text}, true
		}
		return c, true
	}
	return Chunk{Lo: start, Hi: s.off, Kind: Text}, true
}

// scan advances the cursor to the next reference or unterminated item and
// returns it, leaving the cursor at the chunk's Hi. Plain content, including
// comments and literals consumed whole, is skipped over. Returns found=false
// when the rest of the fragment is plain.
func (s *Scanner) scan() (Chunk, bool) {
	src := s.src
	i := s.off
	for i < len(src) {
		if strings.HasPrefix(src[i:], s.open) {
			c := s.scanReference(i)
			s.off = c.Hi
			return c, true
		}
		switch src[i] {
		case '/':
			if i+1 < len(src) && src[i+1] == '/' {
				// A line comment ending at the end of the fragment is not an
				// error; the newline is merely absent, not required.
				if k := strings.IndexByte(src[i:], '\n'); k < 0 {
					i = len(src)
				} else {
					i += k + 1
				}
				continue
			}
			if i+1 < len(src) && src[i+1] == '*' {
				j, ok := s.skipBlockComment(i)
				if !ok {
					s.off = len(src)
					return Chunk{Lo: i, Hi: len(src), Kind: Unterminated, Desc: "block comment"}, true
				}
				i = j
				continue
			}
			i++
		case 'r':
			j, opener := s.rawStringOpener(i)
			if !opener {
				i++
				continue
			}
			k, ok := s.skipRawString(i, j)
			if !ok {
				s.off = len(src)
				return Chunk{Lo: i, Hi: len(src), Kind: Unterminated, Desc: "raw string"}, true
			}
			i = k
		case '"':
			k, ok := s.skipString(i)
			if !ok {
				s.off = len(src)
				return Chunk{Lo: i, Hi: len(src), Kind: Unterminated, Desc: "double quote string"}, true
			}
			i = k
		case '\'':
			k, c, isChunk := s.scanQuote(i)
			if isChunk {
				s.off = c.Hi
				return c, true
			}
			i = k
		default:
			i++
		}
	}
	s.off = len(src)
	return Chunk{}, false
}

// scanReference is entered at the opening delimiter. The matching closer
// yields a Reference chunk spanning both delimiters inclusive; a missing
// closer yields an unterminated chunk reaching the end of the fragment.
func (s *Scanner) scanReference(i int) Chunk {
	nameStart := i + len(s.open)
	rel := strings.Index(s.src[nameStart:], s.close)
	if rel < 0 {
		return Chunk{Lo: i, Hi: len(s.src), Kind: Unterminated, Desc: "section name"}
	}
	return Chunk{Lo: i, Hi: nameStart + rel + len(s.close), Kind: Reference}
}

// skipBlockComment is entered at "/*". Block comments nest: a depth counter
// tracks inner openers, and only the balancing closer ends the comment.
func (s *Scanner) skipBlockComment(i int) (end int, ok bool) {
	depth := 1
	j := i + 2
	for depth > 0 {
		open := strings.Index(s.src[j:], "/*")
		clos := strings.Index(s.src[j:], "*/")
		if clos < 0 {
			return 0, false
		}
		if open >= 0 && open < clos {
			depth++
			j += open + 2
		} else {
			depth--
			j += clos + 2
		}
	}
	return j, true
}

// rawStringOpener tests for the letter r followed by zero or more hash marks
// followed by a double quote, reporting the quote's offset.
func (s *Scanner) rawStringOpener(i int) (quote int, ok bool) {
	j := i + 1
	for j < len(s.src) && s.src[j] == '#' {
		j++
	}
	if j < len(s.src) && s.src[j] == '"' {
		return j, true
	}
	return 0, false
}

// skipRawString is entered with the opener's quote at offset quote. The
// terminator is a double quote followed by exactly as many hash marks as the
// opener carried.
func (s *Scanner) skipRawString(i, quote int) (end int, ok bool) {
	term := `"` + strings.Repeat("#", quote-i-1)
	rel := strings.Index(s.src[quote+1:], term)
	if rel < 0 {
		return 0, false
	}
	return quote + 1 + rel + len(term), true
}

// skipString is entered at the opening double quote. A backslash escapes the
// following byte, so an escaped quote does not close the string; literal
// newlines are permitted inside.
func (s *Scanner) skipString(i int) (end int, ok bool) {
	k := i + 1
	for k < len(s.src) {
		switch s.src[k] {
		case '\\':
			k += 2
		case '"':
			return k + 1, true
		default:
			k++
		}
	}
	return 0, false
}

// scanQuote is entered at a single quote, which opens either a lifetime or a
// character literal. A lifetime (an identifier-shaped token with no closing
// quote after it) is plain code and produces no chunk. Otherwise one
// possibly-escaped byte is consumed and a closing quote is required; when it
// is missing the unterminated chunk covers only the opening quote plus the
// consumed character, deliberately short rather than running to the end of
// the fragment.
func (s *Scanner) scanQuote(i int) (resume int, c Chunk, isChunk bool) {
	src := s.src
	if j := i + 1; j < len(src) && isIdentStart(src[j]) {
		k := j + 1
		for k < len(src) && isIdentByte(src[k]) {
			k++
		}
		if k >= len(src) || src[k] != '\'' {
			return k, Chunk{}, false // lifetime
		}
	}
	k := i + 1
	if k < len(src) {
		if src[k] == '\\' {
			k += 2
		} else {
			k++
		}
		if k > len(src) {
			k = len(src)
		}
	}
	if k < len(src) && src[k] == '\'' {
		return k + 1, Chunk{}, false
	}
	return 0, Chunk{Lo: i, Hi: k, Kind: Unterminated, Desc: "character literal"}, true
}

func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isIdentByte(b byte) bool {
	return isIdentStart(b) || (b >= '0' && b <= '9')
}
