// Package rx turns a raw pattern string into a postfix symbol sequence.
// It runs in two phases: the formatter resolves escapes, expands bracket
// expressions and inserts explicit concatenation symbols, then the
// shunting-yard parser reorders the annotated infix stream into postfix.
package rx

// Kind identifies what a Symbol stands for.
type Kind int

const (
	SymChar Kind = iota
	SymOptional
	SymPlus
	SymStar
	SymConcat
	SymAlt
	SymOpen
	SymClose
)

// OpType classifies a symbol's role as an operator.
type OpType int

const (
	NotOperator OpType = iota
	Unary
	Binary
)

// Symbol is one element of a formatted pattern: a literal character or
// an operator. Pos is the rune offset in the original pattern; symbols
// synthesized by the formatter inherit the offset of the construct that
// produced them.
type Symbol struct {
	Kind Kind
	Char rune
	Pos  int
}

// Precedence returns the operator precedence: repetition binds tighter
// than concatenation, concatenation tighter than alternation. All
// operators are left-associative.
func (s Symbol) Precedence() int {
	switch s.Kind {
	case SymOptional, SymPlus, SymStar:
		return 3
	case SymConcat:
		return 2
	case SymAlt:
		return 1
	default:
		return 0
	}
}

func (s Symbol) OpType() OpType {
	switch s.Kind {
	case SymOptional, SymPlus, SymStar:
		return Unary
	case SymConcat, SymAlt:
		return Binary
	default:
		return NotOperator
	}
}

func (s Symbol) String() string {
	switch s.Kind {
	case SymOptional:
		return "?"
	case SymPlus:
		return "+"
	case SymStar:
		return "*"
	case SymConcat:
		return "."
	case SymAlt:
		return "|"
	case SymOpen:
		return "("
	case SymClose:
		return ")"
	default:
		return string(s.Char)
	}
}

func fromChar(c rune, pos int) Symbol {
	switch c {
	case '?':
		return Symbol{Kind: SymOptional, Pos: pos}
	case '+':
		return Symbol{Kind: SymPlus, Pos: pos}
	case '*':
		return Symbol{Kind: SymStar, Pos: pos}
	case '|':
		return Symbol{Kind: SymAlt, Pos: pos}
	case '(':
		return Symbol{Kind: SymOpen, Pos: pos}
	case ')':
		return Symbol{Kind: SymClose, Pos: pos}
	default:
		return Symbol{Kind: SymChar, Char: c, Pos: pos}
	}
}
