package automaton

import "unicode/utf8"

// activeSet is the frontier of simultaneously active states. Membership is a
// bool per arena slot; ids keeps insertion order for deterministic iteration.
type activeSet struct {
	member []bool
	ids    []StateID
}

func newActiveSet(n int) *activeSet {
	return &activeSet{member: make([]bool, n)}
}

// add inserts id and reports whether it was newly added.
func (s *activeSet) add(id StateID) bool {
	if s.member[id] {
		return false
	}
	s.member[id] = true
	s.ids = append(s.ids, id)
	return true
}

func (s *activeSet) has(id StateID) bool {
	return s.member[id]
}

func (s *activeSet) remove(id StateID) {
	if !s.member[id] {
		return
	}
	s.member[id] = false
	kept := s.ids[:0]
	for _, v := range s.ids {
		if v != id {
			kept = append(kept, v)
		}
	}
	s.ids = kept
}

func (s *activeSet) reset() {
	for _, id := range s.ids {
		s.member[id] = false
	}
	s.ids = s.ids[:0]
}

// closure expands set in place with every state reachable through free
// transitions. Only start and quantifier states expand; the set itself
// doubles as the visited marker, so each state is pushed at most once.
func (a *Automaton) closure(set *activeSet) {
	stack := append([]StateID(nil), set.ids...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !a.states[id].epsilon() {
			continue
		}
		for _, nxt := range a.states[id].next {
			if set.add(nxt) {
				stack = append(stack, nxt)
			}
		}
	}
}

// step advances the frontier by one input rune: every active state that
// consumes r contributes its transitions, and every active quantifier whose
// loop atom consumes r re-admits itself, which is what makes the atom
// repeatable without an explicit back edge.
func (a *Automaton) step(active, next *activeSet, r rune) {
	next.reset()
	for _, id := range active.ids {
		st := &a.states[id]
		if st.checkSelf(r) {
			for _, t := range st.next {
				next.add(t)
			}
		}
		if st.loop != noLoop && a.states[st.loop].checkSelf(r) {
			next.add(id)
		}
	}
	a.closure(next)
}

// MatchString reports whether input, consumed in full, drives the automaton
// from start to termination. It is total: any input, including the empty
// string, yields a boolean.
func (a *Automaton) MatchString(input string) bool {
	active, next := a.seed()
	for _, r := range input {
		a.step(active, next, r)
		active, next = next, active
	}
	return active.has(a.term)
}

// Match is MatchString over a UTF-8 encoded byte slice.
func (a *Automaton) Match(b []byte) bool {
	active, next := a.seed()
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		b = b[size:]
		a.step(active, next, r)
		active, next = next, active
	}
	return active.has(a.term)
}

// seed builds the initial frontier: the epsilon closure of the start state,
// minus the start state itself, which only exists to seed the closure.
func (a *Automaton) seed() (active, next *activeSet) {
	active = newActiveSet(len(a.states))
	active.add(a.start)
	a.closure(active)
	active.remove(a.start)
	next = newActiveSet(len(a.states))
	return active, next
}
