package source

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineIndexPosition(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		offset int
		want   Position
	}{
		{"offset zero", "hello\nworld\n", 0, Position{0, 0}},
		{"middle of first line", "hello\nworld\n", 3, Position{0, 3}},
		{"newline belongs to its line", "hello\nworld\n", 5, Position{0, 5}},
		{"start of second line", "hello\nworld\n", 6, Position{1, 0}},
		{"final newline", "hello\nworld\n", 11, Position{1, 5}},
		{"offset at end", "hello\nworld\n", 12, Position{2, 0}},
		{"offset past end", "hello\nworld\n", 20, Position{2, 8}},
		{"empty text", "", 0, Position{0, 0}},
		{"empty text past end", "", 7, Position{0, 7}},
		{"no trailing newline", "ab\ncd", 4, Position{1, 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			idx := NewLineIndex(test.text)
			got := idx.Position(test.offset)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("position diff (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLineIndexCountsNewlines(t *testing.T) {
	text := "a\n\nbb\ncc\n\n"
	idx := NewLineIndex(text)
	for k := 0; k <= len(text)+2; k++ {
		upTo := k
		if upTo > len(text) {
			upTo = len(text)
		}
		want := strings.Count(text[:upTo], "\n")
		if got := idx.Position(k).Line; got != want {
			t.Errorf("Position(%d).Line = %d, want %d", k, got, want)
		}
	}
}

func TestPositionInDocument(t *testing.T) {
	anchor := Position{Line: 4, Col: 7}
	tests := []struct {
		name string
		in   Position
		want Position
	}{
		{"first line shifts column", Position{0, 3}, Position{4, 10}},
		{"later line keeps column", Position{2, 3}, Position{6, 3}},
		{"fragment start", Position{0, 0}, Position{4, 7}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.in.InDocument(anchor); got != test.want {
				t.Errorf("InDocument(%v) = %v, want %v", test.in, got, test.want)
			}
		})
	}
}

func TestPositionString(t *testing.T) {
	got := Position{Line: 3, Col: 11}.String()
	if want := "line 3, col 11"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
