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

func runCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := matchCmd()
	if args[0] == "gen" {
		cmd = genCmd()
	}
	args = args[1:]

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMatchCommandArgs(t *testing.T) {
	out, err := runCommand(t, "", "match", "a*4.+hi", "4uhi", "meow")
	require.NoError(t, err)
	assert.Equal(t, "4uhi\ttrue\nmeow\tfalse\n", out)
}

func TestMatchCommandStdin(t *testing.T) {
	out, err := runCommand(t, "x\nxxx\ny\n", "match", "x+")
	require.NoError(t, err)
	assert.Equal(t, "x\ttrue\nxxx\ttrue\ny\tfalse\n", out)
}

func TestMatchCommandBadPattern(t *testing.T) {
	_, err := runCommand(t, "", "match", "*oops", "input")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantifier")
}

func TestGenCommandFlags(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen.go")
	_, err := runCommand(t, "", "gen",
		"--pattern", "ab+", "--name", "AB", "--output", out, "--package", "patterns")
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "func (AB) MatchString(input string) bool")
}

func TestGenCommandConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "refsm.yaml")
	yaml := `patterns:
  - name: Star
    pattern: a*b
    output: ` + filepath.Join(dir, "star_gen.go") + `
    package: patterns
  - name: Plus
    pattern: c+
    output: ` + filepath.Join(dir, "plus_gen.go") + `
    package: patterns
`
	require.NoError(t, os.WriteFile(cfg, []byte(yaml), 0o644))

	out, err := runCommand(t, "", "gen", "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "generated Star")
	assert.Contains(t, out, "generated Plus")
	assert.FileExists(t, filepath.Join(dir, "star_gen.go"))
	assert.FileExists(t, filepath.Join(dir, "plus_gen.go"))
}

func TestLoadGenConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "refsm.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`patterns:
  - name: One
    pattern: x.
    output: one_gen.go
    package: p
`), 0o644))

	entries, err := loadGenConfig(cfg)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, genEntry{Name: "One", Pattern: "x.", Output: "one_gen.go", Package: "p"}, entries[0])
}

func TestLoadGenConfigEmpty(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "refsm.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("patterns: []\n"), 0o644))

	_, err := loadGenConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patterns")
}
