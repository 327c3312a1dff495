package refsm

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileAndMatch(t *testing.T) {
	re, err := Compile("a*4.+hi")
	require.NoError(t, err)

	assert.True(t, re.MatchString("aaaaaa4uhi"))
	assert.True(t, re.MatchString("4uhi"))
	assert.False(t, re.MatchString("meow"))
	assert.True(t, re.MatchString("a4/hi"))
	assert.False(t, re.MatchString("4hi"))

	assert.True(t, re.Match([]byte("a4éhi")))
	assert.Equal(t, "a*4.+hi", re.String())
	assert.Equal(t, 9, re.NumStates())
}

func TestCompileRejectsDanglingQuantifier(t *testing.T) {
	_, err := Compile("*ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quantifier")
}

func TestMustCompilePanics(t *testing.T) {
	assert.Panics(t, func() { MustCompile("+x") })
	assert.NotPanics(t, func() { MustCompile("x+") })
}

func TestOptionsValidate(t *testing.T) {
	valid := Options{Pattern: "a+", Name: "A", OutputFile: "a.go", Package: "p"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Options)
		want   string
	}{
		{"missing pattern", func(o *Options) { o.Pattern = "" }, "pattern"},
		{"missing name", func(o *Options) { o.Name = "" }, "name"},
		{"missing output", func(o *Options) { o.OutputFile = "" }, "output file"},
		{"missing package", func(o *Options) { o.Package = "" }, "package"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := valid
			tt.mutate(&o)
			err := o.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "pattern_gen.go")
	err := Generate(Options{
		Pattern:    "ab*c",
		Name:       "abc",
		OutputFile: out,
		Package:    "patterns",
	})
	require.NoError(t, err)

	src, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(src), "package patterns")
	assert.Contains(t, string(src), "func (Abc) MatchString(input string) bool")
}

func TestGenerateInvalidPattern(t *testing.T) {
	err := Generate(Options{
		Pattern:    "*a",
		Name:       "Bad",
		OutputFile: filepath.Join(t.TempDir(), "bad.go"),
		Package:    "patterns",
	})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to compile pattern"))
}
