package automaton

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrDanglingQuantifier is returned when a '*' or '+' has no preceding atom
// to quantify, e.g. a pattern starting with '*' or a doubled quantifier.
var ErrDanglingQuantifier = errors.New("quantifier with no preceding atom")

// Compile builds the automaton for pattern in a single left-to-right pass
// with one rune of lookahead. Each atom contributes exactly one state and
// each quantifier one more, so the arena size is linear in the pattern
// length. Any rune other than '.', '*' and '+' matches itself verbatim.
func Compile(pattern string) (*Automaton, error) {
	a := &Automaton{pattern: pattern}
	a.start = a.addState(KindStart, 0)
	a.term = a.addState(KindTermination, 0)

	runes := []rune(pattern)
	prev := a.start
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		if c == '*' || c == '+' {
			return nil, fmt.Errorf("pattern %q: position %d: %w", pattern, i, ErrDanglingQuantifier)
		}

		var atom StateID
		if c == '.' {
			atom = a.addState(KindWildcard, 0)
		} else {
			atom = a.addState(KindLiteral, c)
		}

		var quant rune
		if i+1 < len(runes) && (runes[i+1] == '*' || runes[i+1] == '+') {
			quant = runes[i+1]
			i++
		}

		switch quant {
		case '*':
			// Three edges: prev->atom and atom->star for the one-or-more
			// path, prev->star to skip the atom entirely. Repetition is
			// driven at simulation time through the loop back-link.
			star := a.addState(KindStar, 0)
			a.states[star].loop = atom
			a.addEdge(prev, atom)
			a.addEdge(atom, star)
			a.addEdge(prev, star)
			prev = star
		case '+':
			// No skip edge: at least one occurrence of the atom is
			// mandatory.
			plus := a.addState(KindPlus, 0)
			a.states[plus].loop = atom
			a.addEdge(prev, atom)
			a.addEdge(atom, plus)
			prev = plus
		default:
			a.addEdge(prev, atom)
			prev = atom
		}
	}
	a.addEdge(prev, a.term)

	return a, nil
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Automaton {
	a, err := Compile(pattern)
	if err != nil {
		panic("automaton: Compile(" + strconv.Quote(pattern) + "): " + err.Error())
	}
	return a
}
