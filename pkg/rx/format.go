package rx

import "fmt"

// Format normalizes a raw pattern into an explicit symbol stream.
// Escapes are resolved, bracket expressions are expanded into grouped
// alternations, and implicit concatenation is made visible so the
// parser can treat it like any other binary operator.
func Format(pattern string) ([]Symbol, error) {
	if pattern == "" {
		return nil, ErrEmptyPattern
	}
	syms, err := scan(pattern)
	if err != nil {
		return nil, err
	}
	return insertConcat(syms), nil
}

func scan(pattern string) ([]Symbol, error) {
	runes := []rune(pattern)
	out := make([]Symbol, 0, len(runes))
	for i := 0; i < len(runes); i++ {
		switch runes[i] {
		case '\\':
			if i+1 == len(runes) {
				return nil, fmt.Errorf("%w in pattern %q", ErrTrailingEscape, pattern)
			}
			i++
			sym, err := escapedSymbol(runes[i], i)
			if err != nil {
				return nil, err
			}
			out = append(out, sym)
		case '[':
			members, end, err := scanBracket(runes, i)
			if err != nil {
				return nil, err
			}
			out = append(out, expandBracket(members, i)...)
			i = end
		case ']':
			return nil, fmt.Errorf("%w: unmatched ']' at position %d", ErrUnbalancedBrackets, i)
		default:
			out = append(out, fromChar(runes[i], i))
		}
	}
	return out, nil
}

// escapedSymbol resolves the character following a backslash. Escaped
// metacharacters become plain literals; the usual control escapes
// produce their control character.
func escapedSymbol(c rune, pos int) (Symbol, error) {
	switch c {
	case '?', '+', '*', '|', '(', ')', '[', ']', '\\':
		return Symbol{Kind: SymChar, Char: c, Pos: pos}, nil
	case 't':
		return Symbol{Kind: SymChar, Char: '\t', Pos: pos}, nil
	case 'n':
		return Symbol{Kind: SymChar, Char: '\n', Pos: pos}, nil
	case 'r':
		return Symbol{Kind: SymChar, Char: '\r', Pos: pos}, nil
	case 'b':
		return Symbol{Kind: SymChar, Char: '\b', Pos: pos}, nil
	case 'f':
		return Symbol{Kind: SymChar, Char: '\f', Pos: pos}, nil
	default:
		return Symbol{}, fmt.Errorf("%w: \\%c at position %d", ErrInvalidEscape, c, pos)
	}
}

// scanBracket collects the member characters of a bracket expression
// starting at the '[' at index start. It returns the members and the
// index of the closing ']'.
func scanBracket(runes []rune, start int) ([]Symbol, int, error) {
	var members []Symbol
	for i := start + 1; i < len(runes); i++ {
		switch runes[i] {
		case ']':
			if len(members) == 0 {
				return nil, 0, fmt.Errorf("%w at position %d", ErrEmptyBrackets, start)
			}
			return members, i, nil
		case '\\':
			if i+1 == len(runes) {
				return nil, 0, fmt.Errorf("%w in bracket expression at position %d", ErrTrailingEscape, start)
			}
			i++
			sym, err := escapedSymbol(runes[i], i)
			if err != nil {
				return nil, 0, err
			}
			members = append(members, sym)
		default:
			members = append(members, Symbol{Kind: SymChar, Char: runes[i], Pos: i})
		}
	}
	return nil, 0, fmt.Errorf("%w: '[' at position %d never closed", ErrUnbalancedBrackets, start)
}

// expandBracket rewrites [abc] as (a|b|c): a bracket expression matches
// any one of its members, so they are joined by alternation.
func expandBracket(members []Symbol, pos int) []Symbol {
	out := make([]Symbol, 0, len(members)*2+1)
	out = append(out, Symbol{Kind: SymOpen, Pos: pos})
	for i, m := range members {
		if i > 0 {
			out = append(out, Symbol{Kind: SymAlt, Pos: m.Pos})
		}
		out = append(out, m)
	}
	return append(out, Symbol{Kind: SymClose, Pos: pos})
}

// insertConcat makes implicit concatenation explicit. A concat symbol
// goes between two adjacent symbols whenever the left one can end an
// operand (a literal, a group close, or a repetition) and the right one
// can start one (a literal or a group open).
func insertConcat(syms []Symbol) []Symbol {
	out := make([]Symbol, 0, len(syms)*2)
	for i, s := range syms {
		out = append(out, s)
		if i+1 == len(syms) {
			break
		}
		next := syms[i+1]
		endsOperand := s.Kind != SymOpen && s.OpType() != Binary
		startsOperand := next.Kind == SymChar || next.Kind == SymOpen
		if endsOperand && startsOperand {
			out = append(out, Symbol{Kind: SymConcat, Pos: next.Pos})
		}
	}
	return out
}
