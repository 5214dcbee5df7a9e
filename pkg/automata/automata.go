// Package automata builds the recognizer behind a compiled pattern: a
// Thompson NFA assembled from postfix symbols, determinized into a DFA
// by powerset construction, and a containment matcher over the DFA.
//
// States live in flat arenas and refer to each other by index only, so
// the loop-back edges of repetition operators form genuine graph cycles
// without cyclic ownership.
package automata

import "errors"

// StateID indexes a state inside an automaton's arena.
type StateID int

// DeadState is the implicit reject state: no accepting state is
// reachable from it. DFA.Step routes undefined transitions here.
const DeadState StateID = -1

// Epsilon labels a transition consumed without reading input. The NUL
// rune is reserved for it; patterns cannot contain it.
const Epsilon rune = 0

// ErrMalformedPostfix means a structurally invalid postfix sequence
// reached the NFA builder. The parser guarantees well-formed output,
// so seeing this error indicates a defect upstream, not bad user input.
var ErrMalformedPostfix = errors.New("malformed postfix sequence")
