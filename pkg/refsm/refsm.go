// Package refsm provides a minimal regular-expression engine for full-string
// matching. Patterns support literal characters, the '.' wildcard, and the
// postfix quantifiers '*' and '+'. A pattern compiles once into an immutable
// automaton that can be matched repeatedly and concurrently.
//
// The package can also compile a pattern ahead of time into a specialized Go
// source file, in the spirit of build-time regex compilers.
package refsm

import (
	"fmt"

	"github.com/refsm/refsm/internal/automaton"
	"github.com/refsm/refsm/internal/codegen"
)

// Regexp is a compiled pattern. It is immutable and safe for concurrent use.
type Regexp struct {
	auto *automaton.Automaton
}

// Compile parses the pattern into an automaton. The only rejected input is a
// '*' or '+' with no atom to quantify; every other character is either part
// of the grammar or a literal to match verbatim.
func Compile(pattern string) (*Regexp, error) {
	auto, err := automaton.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regexp{auto: auto}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
// It simplifies safe initialization of global variables holding patterns.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic(err.Error())
	}
	return re
}

// MatchString reports whether the whole input string matches the pattern.
func (re *Regexp) MatchString(input string) bool {
	return re.auto.MatchString(input)
}

// Match reports whether the whole UTF-8 encoded byte slice matches the
// pattern.
func (re *Regexp) Match(b []byte) bool {
	return re.auto.Match(b)
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.auto.Pattern()
}

// NumStates returns the size of the compiled automaton, including the start
// and termination states.
func (re *Regexp) NumStates() int {
	return re.auto.NumStates()
}

// Options configures ahead-of-time code generation for one pattern.
type Options struct {
	// Pattern is the expression to compile
	Pattern string

	// Name is the prefix for generated identifiers (e.g., "Email" generates
	// "EmailMatchString" via the Email type)
	Name string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Verbose enables analysis logging during generation
	Verbose bool
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.Pattern == "" {
		return fmt.Errorf("pattern cannot be empty")
	}
	if o.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	return nil
}

// Generate compiles the pattern and writes a specialized Go match function
// to the configured output file.
func Generate(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	auto, err := automaton.Compile(opts.Pattern)
	if err != nil {
		return fmt.Errorf("failed to compile pattern: %w", err)
	}

	g, err := codegen.New(codegen.Config{
		Pattern:    opts.Pattern,
		Name:       opts.Name,
		Package:    opts.Package,
		OutputFile: opts.OutputFile,
		Verbose:    opts.Verbose,
	}, auto)
	if err != nil {
		return err
	}

	if err := g.Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}
