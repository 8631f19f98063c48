package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func writeTestDoc(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

const cliDoc = "# doc\n\n```rust\nfn main() {\n" +
	"\n// ⟨greet⟩ gets pulled in below\n⟨greet⟩\n}\n```\n\n" +
	"```rust\n⟨greet⟩≡\n    println!(\"hi\");\n```\n"

func TestTangleCommand(t *testing.T) {
	path := writeTestDoc(t, cliDoc)
	stdout, _, err := execute(t, "tangle", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "fn main() {")
	assert.Contains(t, stdout, "// ⟨greet⟩\n    println!(\"hi\");")
}

func TestTangleCommandReportsProblems(t *testing.T) {
	path := writeTestDoc(t, "```rust\n⟨Missing⟩\n```\n")
	stdout, stderr, err := execute(t, "tangle", path)
	require.Error(t, err)
	// best-effort output still appears
	assert.Contains(t, stdout, "⟨Missing⟩")
	assert.Contains(t, stderr, "undefined section Missing")
}

func TestTangleCommandOutputFile(t *testing.T) {
	path := writeTestDoc(t, "```rust\nbody\n```\n")
	outPath := filepath.Join(t.TempDir(), "out.rs")
	_, _, err := execute(t, "tangle", "-o", outPath, path)
	require.NoError(t, err)
	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "body\n", string(data))
	tangleOutput = "" // reset for other tests
}

func TestSectionsCommand(t *testing.T) {
	path := writeTestDoc(t, cliDoc)
	stdout, _, err := execute(t, "sections", path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "(unnamed)")
	assert.Contains(t, lines[1], "greet")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "draft ")
	assert.Contains(t, stdout, "Go version:")
}
