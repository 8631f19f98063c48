package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

var testDelims = Delims{Open: '⟨', Close: '⟩', Define: '≡', Continue: '+'}

func scanAll(t *testing.T, src string) []Chunk {
	t.Helper()
	s := New(src, testDelims)
	var chunks []Chunk
	for {
		c, ok := s.Next()
		if !ok {
			break
		}
		chunks = append(chunks, c)
	}
	// chunks must be gap-free, in order, and cover the whole fragment
	at := 0
	for _, c := range chunks {
		if c.Lo != at {
			t.Errorf("chunk %+v starts at %d, want %d", c, c.Lo, at)
		}
		if c.Hi < c.Lo || c.Hi > len(src) {
			t.Errorf("chunk %+v out of range (len %d)", c, len(src))
		}
		at = c.Hi
	}
	if at != len(src) {
		t.Errorf("chunks end at %d, want %d", at, len(src))
	}
	return chunks
}

func TestScanner(t *testing.T) {
	// delimiter glyphs are 3 bytes each in UTF-8
	tests := []struct {
		name  string
		input string
		want  []Chunk
	}{
		{
			"empty fragment",
			"",
			nil,
		},
		{
			"plain text only",
			"fn main() {}\n",
			[]Chunk{{Lo: 0, Hi: 13, Kind: Text}},
		},
		{
			"reference in the middle",
			"a⟨x⟩b",
			[]Chunk{
				{Lo: 0, Hi: 1, Kind: Text},
				{Lo: 1, Hi: 8, Kind: Reference},
				{Lo: 8, Hi: 9, Kind: Text},
			},
		},
		{
			"reference at start",
			"⟨x⟩",
			[]Chunk{{Lo: 0, Hi: 7, Kind: Reference}},
		},
		{
			"unterminated reference",
			"a⟨name",
			[]Chunk{
				{Lo: 0, Hi: 1, Kind: Text},
				{Lo: 1, Hi: 8, Kind: Unterminated, Desc: "section name"},
			},
		},
		{
			"reference delimiter inside line comment",
			"x // ⟨not a ref⟩\ny",
			[]Chunk{{Lo: 0, Hi: 22, Kind: Text}},
		},
		{
			"line comment at end of fragment is not an error",
			"x // trailing",
			[]Chunk{{Lo: 0, Hi: 13, Kind: Text}},
		},
		{
			"nested block comment consumed as one unit",
			"/* a /* b */ c */",
			[]Chunk{{Lo: 0, Hi: 17, Kind: Text}},
		},
		{
			"reference delimiter inside block comment",
			"/* ⟨x⟩ */⟨y⟩",
			[]Chunk{
				{Lo: 0, Hi: 13, Kind: Text},
				{Lo: 13, Hi: 20, Kind: Reference},
			},
		},
		{
			"unterminated block comment",
			"a /* b /* c */",
			[]Chunk{
				{Lo: 0, Hi: 2, Kind: Text},
				{Lo: 2, Hi: 14, Kind: Unterminated, Desc: "block comment"},
			},
		},
		{
			"double quote string hides reference delimiter",
			`"⟨x⟩"⟨y⟩`,
			[]Chunk{
				{Lo: 0, Hi: 9, Kind: Text},
				{Lo: 9, Hi: 16, Kind: Reference},
			},
		},
		{
			"escaped quote does not close the string",
			`"a\"b"c`,
			[]Chunk{{Lo: 0, Hi: 7, Kind: Text}},
		},
		{
			"newline permitted inside string",
			"\"a\nb\"c",
			[]Chunk{{Lo: 0, Hi: 6, Kind: Text}},
		},
		{
			"unterminated double quote string",
			`x "abc`,
			[]Chunk{
				{Lo: 0, Hi: 2, Kind: Text},
				{Lo: 2, Hi: 6, Kind: Unterminated, Desc: "double quote string"},
			},
		},
		{
			"raw string with hashes",
			`r#"a ⟨x⟩ "#b`,
			[]Chunk{{Lo: 0, Hi: 16, Kind: Text}},
		},
		{
			"raw string terminator needs exact hash count",
			`r##"inner r#"nested"# still open"##.`,
			[]Chunk{{Lo: 0, Hi: 36, Kind: Text}},
		},
		{
			"unterminated raw string",
			`r#"abc"`,
			[]Chunk{{Lo: 0, Hi: 7, Kind: Unterminated, Desc: "raw string"}},
		},
		{
			"bare r is plain",
			"var = r + 1",
			[]Chunk{{Lo: 0, Hi: 11, Kind: Text}},
		},
		{
			"lifetime is plain code",
			"&'a str ⟨x⟩",
			[]Chunk{
				{Lo: 0, Hi: 8, Kind: Text},
				{Lo: 8, Hi: 15, Kind: Reference},
			},
		},
		{
			"char literal consumed whole",
			"'+' ⟨x⟩",
			[]Chunk{
				{Lo: 0, Hi: 4, Kind: Text},
				{Lo: 4, Hi: 11, Kind: Reference},
			},
		},
		{
			"escaped char literal",
			`'\'' 'a'`,
			[]Chunk{{Lo: 0, Hi: 8, Kind: Text}},
		},
		{
			"unterminated char literal span stays short",
			"'\n",
			[]Chunk{{Lo: 0, Hi: 2, Kind: Unterminated, Desc: "character literal"}},
		},
		{
			"multi-character lifetime is plain code",
			"'ab ⟨x⟩",
			[]Chunk{
				{Lo: 0, Hi: 4, Kind: Text},
				{Lo: 4, Hi: 11, Kind: Reference},
			},
		},
		{
			"scanning resumes after short char literal span",
			"'+x ⟨y⟩",
			[]Chunk{
				{Lo: 0, Hi: 2, Kind: Unterminated, Desc: "character literal"},
				{Lo: 2, Hi: 4, Kind: Text},
				{Lo: 4, Hi: 11, Kind: Reference},
			},
		},
		{
			"quote at end of fragment",
			"'",
			[]Chunk{{Lo: 0, Hi: 1, Kind: Unterminated, Desc: "character literal"}},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := scanAll(t, test.input)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("chunk diff (-want +got):\n%s", diff)
			}
		})
	}
}
