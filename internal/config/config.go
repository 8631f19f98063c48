// Package config holds the tangling configuration: which fence language tag
// to consume, the delimiter glyphs, and where output goes. Configuration is
// read from an optional YAML file; every field has a default.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"draft/internal/scanner"
)

// DefaultPath is where Load looks when no config file is named explicitly.
const DefaultPath = ".draft.yml"

type Config struct {
	// Language is the fence info tag of blocks to tangle.
	Language string `yaml:"language"`
	// Delimiters are the section-reference and definition glyphs.
	Delimiters Delimiters `yaml:"delimiters"`
	// Output is the file tangled text is written to; empty means stdout.
	Output string `yaml:"output"`
}

// Delimiters are configured as strings so YAML stays readable; Validate
// enforces that each is a single code point.
type Delimiters struct {
	Open     string `yaml:"open"`
	Close    string `yaml:"close"`
	Define   string `yaml:"define"`
	Continue string `yaml:"continue"`
}

func Default() Config {
	return Config{
		Language: "rust",
		Delimiters: Delimiters{
			Open:     "⟨",
			Close:    "⟩",
			Define:   "≡",
			Continue: "+",
		},
	}
}

// Load reads the config file at path, applying defaults for anything left
// unset. A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the delimiter glyphs. Open, Close, and Define must be
// single code points outside ASCII so they cannot collide with ordinary
// tokens of the target language; Continue only ever appears inside a
// definition header, so any single code point will do.
func (c Config) Validate() error {
	if c.Language == "" {
		return errors.New("language must not be empty")
	}
	glyphs := []struct {
		name     string
		val      string
		anyASCII bool
	}{
		{"open", c.Delimiters.Open, false},
		{"close", c.Delimiters.Close, false},
		{"define", c.Delimiters.Define, false},
		{"continue", c.Delimiters.Continue, true},
	}
	for _, g := range glyphs {
		r, size := utf8.DecodeRuneInString(g.val)
		if r == utf8.RuneError || size != len(g.val) {
			return fmt.Errorf("delimiter %s must be a single character, got %q", g.name, g.val)
		}
		if !g.anyASCII && size == 1 {
			return fmt.Errorf("delimiter %s must not be an ASCII character, got %q", g.name, g.val)
		}
	}
	if c.Delimiters.Open == c.Delimiters.Close {
		return errors.New("open and close delimiters must differ")
	}
	return nil
}

// Delims returns the scanner's view of the delimiter glyphs. Call Validate
// first; Delims assumes each glyph is a single code point.
func (c Config) Delims() scanner.Delims {
	open, _ := utf8.DecodeRuneInString(c.Delimiters.Open)
	close, _ := utf8.DecodeRuneInString(c.Delimiters.Close)
	define, _ := utf8.DecodeRuneInString(c.Delimiters.Define)
	cont, _ := utf8.DecodeRuneInString(c.Delimiters.Continue)
	return scanner.Delims{Open: open, Close: close, Define: define, Continue: cont}
}
