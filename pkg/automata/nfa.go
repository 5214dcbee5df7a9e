package automata

import (
	"fmt"
	"sort"

	"regrep/pkg/rx"
)

// NFA is a nondeterministic finite automaton with a single start state
// and a single accept state, as Thompson's construction produces.
type NFA struct {
	states []nfaState
	Start  StateID
	Accept StateID
}

type nfaState struct {
	next map[rune][]StateID
}

func (n *NFA) addState() StateID {
	n.states = append(n.states, nfaState{next: make(map[rune][]StateID)})
	return StateID(len(n.states) - 1)
}

func (n *NFA) addEdge(from, to StateID, label rune) {
	n.states[from].next[label] = append(n.states[from].next[label], to)
}

// Len returns the number of states in the arena.
func (n *NFA) Len() int { return len(n.states) }

// EpsilonClosure returns the smallest superset of set closed under
// epsilon transitions, sorted by state ID. Idempotent: closing an
// already-closed set returns it unchanged.
func (n *NFA) EpsilonClosure(set []StateID) []StateID {
	closed := make(map[StateID]struct{}, len(set))
	for _, s := range set {
		closed[s] = struct{}{}
	}
	n.close(closed)
	return sortedIDs(closed)
}

// close expands set in place until it is closed under epsilon edges.
func (n *NFA) close(set map[StateID]struct{}) {
	work := make([]StateID, 0, len(set))
	for s := range set {
		work = append(work, s)
	}
	for len(work) > 0 {
		s := work[len(work)-1]
		work = work[:len(work)-1]
		for _, dst := range n.states[s].next[Epsilon] {
			if _, ok := set[dst]; ok {
				continue
			}
			set[dst] = struct{}{}
			work = append(work, dst)
		}
	}
}

// move returns the union of destinations under symbol from every state
// in set. Epsilon edges are not followed; callers close the result.
func (n *NFA) move(set map[StateID]struct{}, symbol rune) map[StateID]struct{} {
	out := make(map[StateID]struct{})
	for s := range set {
		for _, dst := range n.states[s].next[symbol] {
			out[dst] = struct{}{}
		}
	}
	return out
}

// symbols returns the distinct non-epsilon labels on transitions out of
// the states in set, sorted for deterministic construction order.
func (n *NFA) symbols(set map[StateID]struct{}) []rune {
	seen := make(map[rune]struct{})
	for s := range set {
		for label := range n.states[s].next {
			if label != Epsilon {
				seen[label] = struct{}{}
			}
		}
	}
	out := make([]rune, 0, len(seen))
	for label := range seen {
		out = append(out, label)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedIDs(set map[StateID]struct{}) []StateID {
	out := make([]StateID, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// fragment is the construction-time unit on the builder's operand
// stack: the start and accept indices of a partial automaton. Only the
// final fragment survives as the NFA's start/accept pair.
type fragment struct {
	start  StateID
	accept StateID
}

// BuildNFA assembles an NFA from a postfix symbol sequence, one
// Thompson case per symbol. The fragment stack must drain to exactly
// one fragment; anything else is a parser defect, reported as
// ErrMalformedPostfix.
func BuildNFA(postfix []rx.Symbol) (*NFA, error) {
	nfa := &NFA{}
	var stack []fragment

	pop := func(sym rx.Symbol) (fragment, error) {
		if len(stack) == 0 {
			return fragment{}, fmt.Errorf("%w: operand stack underflow at %q", ErrMalformedPostfix, sym.String())
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		return f, nil
	}

	for _, sym := range postfix {
		switch sym.Kind {
		case rx.SymChar:
			start, accept := nfa.addState(), nfa.addState()
			nfa.addEdge(start, accept, sym.Char)
			stack = append(stack, fragment{start, accept})

		case rx.SymConcat:
			right, err := pop(sym)
			if err != nil {
				return nil, err
			}
			left, err := pop(sym)
			if err != nil {
				return nil, err
			}
			nfa.addEdge(left.accept, right.start, Epsilon)
			stack = append(stack, fragment{left.start, right.accept})

		case rx.SymAlt:
			right, err := pop(sym)
			if err != nil {
				return nil, err
			}
			left, err := pop(sym)
			if err != nil {
				return nil, err
			}
			start, accept := nfa.addState(), nfa.addState()
			nfa.addEdge(start, left.start, Epsilon)
			nfa.addEdge(start, right.start, Epsilon)
			nfa.addEdge(left.accept, accept, Epsilon)
			nfa.addEdge(right.accept, accept, Epsilon)
			stack = append(stack, fragment{start, accept})

		case rx.SymStar:
			f, err := pop(sym)
			if err != nil {
				return nil, err
			}
			start, accept := nfa.addState(), nfa.addState()
			nfa.addEdge(start, f.start, Epsilon)
			nfa.addEdge(f.accept, f.start, Epsilon)
			nfa.addEdge(start, accept, Epsilon)
			nfa.addEdge(f.accept, accept, Epsilon)
			stack = append(stack, fragment{start, accept})

		case rx.SymPlus:
			f, err := pop(sym)
			if err != nil {
				return nil, err
			}
			// No skip edge: at least one pass through f is mandatory.
			accept := nfa.addState()
			nfa.addEdge(f.accept, f.start, Epsilon)
			nfa.addEdge(f.accept, accept, Epsilon)
			stack = append(stack, fragment{f.start, accept})

		case rx.SymOptional:
			f, err := pop(sym)
			if err != nil {
				return nil, err
			}
			start, accept := nfa.addState(), nfa.addState()
			nfa.addEdge(start, f.start, Epsilon)
			nfa.addEdge(start, accept, Epsilon)
			nfa.addEdge(f.accept, accept, Epsilon)
			stack = append(stack, fragment{start, accept})

		default:
			return nil, fmt.Errorf("%w: %q has no place in postfix form", ErrMalformedPostfix, sym.String())
		}
	}

	if len(stack) != 1 {
		return nil, fmt.Errorf("%w: %d fragments left on the stack", ErrMalformedPostfix, len(stack))
	}
	nfa.Start = stack[0].start
	nfa.Accept = stack[0].accept
	return nfa, nil
}
