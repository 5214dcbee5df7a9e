package automata

import (
	"testing"
)

func mustDFA(t *testing.T, pattern string) *DFA {
	t.Helper()
	return BuildDFA(mustNFA(t, pattern))
}

func TestEpsilonClosureIdempotent(t *testing.T) {
	for _, pattern := range []string{"a", "a*", "(a|b)*c", "a+b?", "(ab)+|(cd)*"} {
		nfa := mustNFA(t, pattern)
		all := make([]StateID, nfa.Len())
		for i := range all {
			all[i] = StateID(i)
		}
		for _, seed := range [][]StateID{{nfa.Start}, {nfa.Accept}, all} {
			once := nfa.EpsilonClosure(seed)
			twice := nfa.EpsilonClosure(once)
			if !equalIDs(once, twice) {
				t.Errorf("pattern %q: closure not idempotent: %v vs %v", pattern, once, twice)
			}
		}
	}
}

func TestStepIsTotal(t *testing.T) {
	dfa := mustDFA(t, "(a|b)*c")
	alphabet := dfa.Alphabet()
	probe := append(alphabet, 'z', '~', ' ')
	for id := 0; id < dfa.Len(); id++ {
		for _, r := range probe {
			next := dfa.Step(StateID(id), r)
			if next != DeadState && (next < 0 || int(next) >= dfa.Len()) {
				t.Fatalf("Step(%d, %q) = %d out of range", id, r, next)
			}
		}
	}
	// The dead state absorbs everything.
	for _, r := range probe {
		if got := dfa.Step(DeadState, r); got != DeadState {
			t.Errorf("Step(DeadState, %q) = %d, want DeadState", r, got)
		}
	}
}

func TestDeterministicAcrossCompiles(t *testing.T) {
	inputs := []string{"", "a", "b", "c", "ac", "bc", "abc", "ababc", "cab", "xyz", "abab"}
	first := mustDFA(t, "a(b|c)*d")
	second := mustDFA(t, "a(b|c)*d")
	for _, input := range inputs {
		if first.MatchLine(input) != second.MatchLine(input) {
			t.Errorf("recompiled DFAs disagree on %q", input)
		}
	}
}

func TestDFAAgreesWithNFASimulation(t *testing.T) {
	patterns := []string{
		"a", "ab", "a|b", "a*", "a+", "a?", "(a|b)*a", "a(b|c)*d",
		"(you)|(us)", "[ab]c", "a*(b+|(a|b))?(c|d)", "(ab)+",
	}
	inputs := []string{
		"", "a", "b", "c", "d", "ab", "ba", "abc", "abd", "acd",
		"aaa", "abab", "you", "us", "yous", "Are you nobody, too?",
		"cbd", "xyz", "abcabc", "ad", "abbbcd",
	}
	for _, pattern := range patterns {
		nfa := mustNFA(t, pattern)
		dfa := BuildDFA(nfa)
		for _, input := range inputs {
			want := nfaSimContains(nfa, input)
			if got := dfa.MatchLine(input); got != want {
				t.Errorf("pattern %q on %q: DFA = %v, NFA simulation = %v", pattern, input, got, want)
			}
		}
	}
}

func TestAcceptFlagFollowsSignature(t *testing.T) {
	dfa := mustDFA(t, "ab")
	if dfa.IsAccept(dfa.Start) {
		t.Error("start of \"ab\" must not accept")
	}
	s := dfa.Step(dfa.Start, 'a')
	if s == DeadState || dfa.IsAccept(s) {
		t.Fatalf("after 'a': state %d accepting=%v", s, dfa.IsAccept(s))
	}
	s = dfa.Step(s, 'b')
	if s == DeadState || !dfa.IsAccept(s) {
		t.Fatalf("after 'ab': state %d accepting=%v", s, dfa.IsAccept(s))
	}
}

func equalIDs(a, b []StateID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
