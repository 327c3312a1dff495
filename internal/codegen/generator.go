package codegen

import (
	"errors"
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/refsm/refsm/internal/automaton"
)

// MaxStates is the largest automaton the generator accepts. The active-state
// frontier of the generated code is a single uint64 bitset, one bit per
// state.
const MaxStates = 64

// ErrTooManyStates is returned when the compiled automaton does not fit the
// bitset representation.
var ErrTooManyStates = errors.New("automaton exceeds generator state limit")

// Config holds the configuration for code generation.
type Config struct {
	Pattern    string
	Name       string
	Package    string
	OutputFile string
	Verbose    bool
}

// Generator emits a specialized Go match function for one compiled
// automaton. All epsilon closures are resolved at generation time, so the
// generated code never walks the state graph: each consumed rune is a handful
// of bit tests and ORs.
type Generator struct {
	config Config
	auto   *automaton.Automaton
	logger *Logger

	closures    []uint64 // epsilon closure bitset per state, including the state itself
	startActive uint64   // initial frontier: closure of start, minus start
	acceptMask  uint64
}

// New creates a generator for the given automaton.
func New(config Config, auto *automaton.Automaton) (*Generator, error) {
	if auto.NumStates() > MaxStates {
		return nil, fmt.Errorf("pattern %q compiles to %d states: %w",
			config.Pattern, auto.NumStates(), ErrTooManyStates)
	}

	g := &Generator{
		config: config,
		auto:   auto,
		logger: NewLogger(config.Verbose),
	}
	g.closures = computeClosures(auto)
	g.startActive = g.closures[auto.Start()] &^ (uint64(1) << uint(auto.Start()))
	g.acceptMask = uint64(1) << uint(auto.Termination())
	return g, nil
}

// SetLogOutput redirects the generator's verbose output.
func (g *Generator) SetLogOutput(l *Logger) {
	if l != nil {
		g.logger = l
	}
}

// computeClosures precomputes the epsilon closure of every state as a bitset.
// Only the start and quantifier states expand their transitions for free.
func computeClosures(a *automaton.Automaton) []uint64 {
	n := a.NumStates()
	closures := make([]uint64, n)
	for i := 0; i < n; i++ {
		cl := uint64(1) << uint(i)
		stack := []automaton.StateID{automaton.StateID(i)}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			switch a.KindOf(id) {
			case automaton.KindStart, automaton.KindStar, automaton.KindPlus:
			default:
				continue
			}
			for _, nxt := range a.Next(id) {
				bit := uint64(1) << uint(nxt)
				if cl&bit == 0 {
					cl |= bit
					stack = append(stack, nxt)
				}
			}
		}
		closures[i] = cl
	}
	return closures
}

// Generate writes the generated file to the configured output path.
func (g *Generator) Generate() error {
	g.logger.Section("Pattern Analysis")
	g.logger.Log("Pattern: %s", g.config.Pattern)
	g.logger.Log("NFA states: %d", g.auto.NumStates())
	g.logger.Log("Start frontier: %#x", g.startActive)
	g.logger.Log("Accept mask: %#x", g.acceptMask)

	name := UpperFirst(g.config.Name)

	g.logger.Section("Code Generation")
	g.logger.Log("Generating %sMatchString (package %s)", name, g.config.Package)

	f := jen.NewFile(g.config.Package)
	f.Comment(fmt.Sprintf("Code generated by refsm for pattern: %s", g.config.Pattern))
	f.Comment("DO NOT EDIT.")
	f.Line()

	// Main struct type plus a convenience instance for direct usage.
	f.Type().Id(name).Struct()
	f.Line()
	f.Var().Id("Compiled" + name).Op("=").Id(name).Values()
	f.Line()

	f.Func().
		Params(jen.Id(name)).
		Id("MatchString").
		Params(jen.Id(InputName).String()).
		Bool().
		Block(g.matchBody()...)

	if err := f.Save(g.config.OutputFile); err != nil {
		return fmt.Errorf("failed to write %s: %w", g.config.OutputFile, err)
	}
	g.logger.Log("Wrote %s", g.config.OutputFile)
	return nil
}

// matchBody generates the full-string bitset simulation.
func (g *Generator) matchBody() []jen.Code {
	// When every transition predicate is a wildcard the rune itself is never
	// inspected, and generated code must not declare an unused variable.
	loop := jen.For(jen.Range().Id(InputName))
	if g.usesRune() {
		loop = jen.For(jen.List(jen.Id("_"), jen.Id(RuneName)).Op(":=").Range().Id(InputName))
	}

	return []jen.Code{
		jen.Comment("Active-state bitset with precomputed epsilon closures"),
		jen.Id(CurrentName).Op(":=").Uint64().Call(jen.Lit(g.startActive)),
		jen.Id(AcceptMaskName).Op(":=").Uint64().Call(jen.Lit(g.acceptMask)),
		jen.Line(),
		loop.Block(
			g.transitionBlock()...,
		),
		jen.Line(),
		jen.Comment("Full match: the accepting state must be active at end of input"),
		jen.Return(jen.Id(CurrentName).Op("&").Id(AcceptMaskName).Op("!=").Lit(0)),
	}
}

// usesRune reports whether any transition predicate inspects the input rune:
// a literal consuming state, or a quantifier looping over a literal atom.
func (g *Generator) usesRune() bool {
	for i := 0; i < g.auto.NumStates(); i++ {
		id := automaton.StateID(i)
		if g.auto.KindOf(id) == automaton.KindLiteral {
			return true
		}
		if atom, ok := g.auto.LoopOf(id); ok && g.auto.KindOf(atom) == automaton.KindLiteral {
			return true
		}
	}
	return false
}

// transitionBlock generates the per-rune frontier advance.
func (g *Generator) transitionBlock() []jen.Code {
	block := []jen.Code{
		jen.Var().Id(NextName).Uint64(),
		jen.Line(),
	}

	for i := 0; i < g.auto.NumStates(); i++ {
		id := automaton.StateID(i)
		switch g.auto.KindOf(id) {
		case automaton.KindLiteral, automaton.KindWildcard:
			block = append(block, g.consumeTransition(id)...)
		case automaton.KindStar, automaton.KindPlus:
			block = append(block, g.loopTransition(id)...)
		}
	}

	block = append(block,
		jen.Line(),
		jen.Id(CurrentName).Op("=").Id(NextName),
		jen.If(jen.Id(CurrentName).Op("==").Lit(0)).Block(
			jen.Return(jen.False()),
		),
	)
	return block
}

// consumeTransition handles a literal or wildcard state: when active and its
// predicate holds, the closures of its transition targets join the frontier.
func (g *Generator) consumeTransition(id automaton.StateID) []jen.Code {
	var step uint64
	for _, nxt := range g.auto.Next(id) {
		step |= g.closures[nxt]
	}

	cond := g.activeBitTest(id)
	var comment string
	if g.auto.KindOf(id) == automaton.KindLiteral {
		lit := g.auto.LiteralOf(id)
		comment = fmt.Sprintf("state %d: literal %q", id, lit)
		cond = cond.Op("&&").Id(RuneName).Op("==").LitRune(lit)
	} else {
		comment = fmt.Sprintf("state %d: wildcard", id)
	}

	return []jen.Code{
		jen.Comment(comment),
		jen.If(cond).Block(
			jen.Id(NextName).Op("|=").Uint64().Call(jen.Lit(step)),
		),
	}
}

// loopTransition handles a quantifier state: when active and its loop atom's
// predicate holds, the quantifier re-admits itself (closure included), which
// reactivates the atom for the next rune.
func (g *Generator) loopTransition(id automaton.StateID) []jen.Code {
	atom, ok := g.auto.LoopOf(id)
	if !ok {
		return nil
	}

	cond := g.activeBitTest(id)
	if g.auto.KindOf(atom) == automaton.KindLiteral {
		cond = cond.Op("&&").Id(RuneName).Op("==").LitRune(g.auto.LiteralOf(atom))
	}

	kind := "star"
	if g.auto.KindOf(id) == automaton.KindPlus {
		kind = "plus"
	}
	return []jen.Code{
		jen.Comment(fmt.Sprintf("state %d: %s looping over state %d", id, kind, atom)),
		jen.If(cond).Block(
			jen.Id(NextName).Op("|=").Uint64().Call(jen.Lit(g.closures[id])),
		),
	}
}

func (g *Generator) activeBitTest(id automaton.StateID) *jen.Statement {
	bit := jen.Uint64().Call(jen.Lit(uint64(1) << uint(id)))
	return jen.Id(CurrentName).Op("&").Add(bit).Op("!=").Lit(0)
}
