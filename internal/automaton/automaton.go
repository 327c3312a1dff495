// Package automaton implements a minimal regular-expression engine: patterns
// are compiled into a nondeterministic finite automaton and evaluated against
// an input string for full-string acceptance.
//
// The supported grammar is literals, the '.' wildcard, and the postfix
// quantifiers '*' and '+' applied to the preceding atom.
package automaton

import "fmt"

// StateID is a stable index into an Automaton's state arena.
type StateID int

// noLoop marks a state that carries no quantifier back-link.
const noLoop StateID = -1

// Kind identifies the role of a state in the automaton graph.
type Kind uint8

const (
	// KindStart is the entry state. It has no incoming transitions and its
	// outgoing transitions are free (taken without consuming input).
	KindStart Kind = iota

	// KindTermination is the accepting state. It has no outgoing transitions.
	KindTermination

	// KindLiteral consumes exactly one input rune equal to its literal.
	KindLiteral

	// KindWildcard consumes any single input rune.
	KindWildcard

	// KindStar is the zero-or-more quantifier state. It never consumes input
	// itself; it routes epsilon transitions and drives re-entry of its loop
	// atom during simulation.
	KindStar

	// KindPlus is the one-or-more quantifier state, same routing role as
	// KindStar but without the skip edge that makes the atom optional.
	KindPlus
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindTermination:
		return "termination"
	case KindLiteral:
		return "literal"
	case KindWildcard:
		return "wildcard"
	case KindStar:
		return "star"
	case KindPlus:
		return "plus"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// state is an arena entry. Transition order is append order and is preserved
// so that construction is deterministic.
type state struct {
	kind    Kind
	literal rune      // set for KindLiteral only
	next    []StateID // ordered outgoing transitions
	loop    StateID   // loop atom for KindStar/KindPlus, else noLoop
}

// checkSelf reports whether the state consumes the rune r. Quantifier states
// and the start/termination states never consume input.
func (s *state) checkSelf(r rune) bool {
	switch s.kind {
	case KindLiteral:
		return s.literal == r
	case KindWildcard:
		return true
	}
	return false
}

// epsilon reports whether the state's outgoing transitions are taken without
// consuming input.
func (s *state) epsilon() bool {
	switch s.kind {
	case KindStart, KindStar, KindPlus:
		return true
	}
	return false
}

// Automaton is a compiled pattern: a state arena with distinguished start and
// termination states. It is immutable after Compile returns and may be shared
// across concurrent match calls; every match allocates its own active sets.
type Automaton struct {
	pattern string
	states  []state
	start   StateID
	term    StateID
}

// Pattern returns the source pattern the automaton was compiled from.
func (a *Automaton) Pattern() string {
	return a.pattern
}

// NumStates returns the number of states in the arena, including the start
// and termination states.
func (a *Automaton) NumStates() int {
	return len(a.states)
}

// Start returns the entry state's ID.
func (a *Automaton) Start() StateID {
	return a.start
}

// Termination returns the accepting state's ID.
func (a *Automaton) Termination() StateID {
	return a.term
}

// KindOf returns the kind of the given state.
func (a *Automaton) KindOf(id StateID) Kind {
	return a.states[id].kind
}

// LiteralOf returns the literal rune of a KindLiteral state. For any other
// kind the result is undefined.
func (a *Automaton) LiteralOf(id StateID) rune {
	return a.states[id].literal
}

// Next returns the ordered outgoing transitions of the given state. The
// returned slice is owned by the automaton and must not be modified.
func (a *Automaton) Next(id StateID) []StateID {
	return a.states[id].next
}

// LoopOf returns the loop atom referenced by a quantifier state. The second
// result is false for non-quantifier states.
func (a *Automaton) LoopOf(id StateID) (StateID, bool) {
	if a.states[id].loop == noLoop {
		return noLoop, false
	}
	return a.states[id].loop, true
}

func (a *Automaton) addState(kind Kind, literal rune) StateID {
	a.states = append(a.states, state{kind: kind, literal: literal, loop: noLoop})
	return StateID(len(a.states) - 1)
}

func (a *Automaton) addEdge(from, to StateID) {
	a.states[from].next = append(a.states[from].next, to)
}
