package automata

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// DFA is a deterministic finite automaton. Once built it is never
// mutated, so a single DFA may be shared by any number of concurrent
// matches without locking.
type DFA struct {
	states []dfaState
	Start  StateID
}

type dfaState struct {
	accept bool
	next   map[rune]StateID
}

func (d *DFA) addState(accept bool) StateID {
	d.states = append(d.states, dfaState{accept: accept, next: make(map[rune]StateID)})
	return StateID(len(d.states) - 1)
}

// Len returns the number of states in the arena.
func (d *DFA) Len() int { return len(d.states) }

// IsAccept reports whether s is an accepting state.
func (d *DFA) IsAccept(s StateID) bool {
	return s != DeadState && d.states[s].accept
}

// Step returns the state reached from s on input r, or DeadState when
// no transition is defined. Together with DeadState the transition
// function is total: matching can never get stuck on a legal symbol.
func (d *DFA) Step(s StateID, r rune) StateID {
	if s == DeadState {
		return DeadState
	}
	if next, ok := d.states[s].next[r]; ok {
		return next
	}
	return DeadState
}

// StepFold is Step under simple case folding: an exact transition wins,
// otherwise any transition whose lowercased label equals the lowercased
// input is taken.
func (d *DFA) StepFold(s StateID, r rune) StateID {
	if next := d.Step(s, r); next != DeadState {
		return next
	}
	if s == DeadState {
		return DeadState
	}
	lr := unicode.ToLower(r)
	for label, next := range d.states[s].next {
		if unicode.ToLower(label) == lr {
			return next
		}
	}
	return DeadState
}

// Alphabet returns the distinct symbols appearing on any transition,
// sorted.
func (d *DFA) Alphabet() []rune {
	seen := make(map[rune]struct{})
	for _, st := range d.states {
		for label := range st.next {
			seen[label] = struct{}{}
		}
	}
	out := make([]rune, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// signature is the canonical key for a subset of NFA states. Sets are
// compared independent of discovery order, so two constructions that
// reach the same subset land on the same DFA state.
func signature(ids []StateID) string {
	var b strings.Builder
	for i, id := range ids {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(int(id)))
	}
	return b.String()
}

// BuildDFA determinizes an NFA by powerset construction. It never
// fails on a well-formed NFA.
func BuildDFA(n *NFA) *DFA {
	d := &DFA{}

	type workItem struct {
		id  StateID
		set map[StateID]struct{}
	}

	startSet := map[StateID]struct{}{n.Start: {}}
	n.close(startSet)

	bySignature := make(map[string]StateID)
	d.Start = d.addState(containsAccept(startSet, n))
	bySignature[signature(sortedIDs(startSet))] = d.Start

	queue := []workItem{{d.Start, startSet}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, symbol := range n.symbols(cur.set) {
			next := n.move(cur.set, symbol)
			if len(next) == 0 {
				// Implicit dead state; no transition recorded.
				continue
			}
			n.close(next)
			key := signature(sortedIDs(next))
			id, ok := bySignature[key]
			if !ok {
				id = d.addState(containsAccept(next, n))
				bySignature[key] = id
				queue = append(queue, workItem{id, next})
			}
			d.states[cur.id].next[symbol] = id
		}
	}
	return d
}

func containsAccept(set map[StateID]struct{}, n *NFA) bool {
	_, ok := set[n.Accept]
	return ok
}
