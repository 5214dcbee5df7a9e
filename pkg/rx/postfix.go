package rx

import "fmt"

// Transform runs the full formatter and parser pipeline, returning the
// pattern in postfix (RPN) order.
func Transform(pattern string) ([]Symbol, error) {
	syms, err := Format(pattern)
	if err != nil {
		return nil, err
	}
	return ToPostfix(syms)
}

// ToPostfix converts a formatted symbol stream to postfix order with
// the shunting-yard algorithm: literals go straight to the output,
// operators wait on a stack until nothing of higher or equal precedence
// is above them, parentheses delimit sub-scopes.
func ToPostfix(syms []Symbol) ([]Symbol, error) {
	if err := checkPlacement(syms); err != nil {
		return nil, err
	}

	output := make([]Symbol, 0, len(syms))
	var stack []Symbol
	for _, s := range syms {
		switch {
		case s.Kind == SymOpen:
			stack = append(stack, s)
		case s.Kind == SymClose:
			matched := false
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.Kind == SymOpen {
					matched = true
					break
				}
				output = append(output, top)
			}
			if !matched {
				return nil, fmt.Errorf("%w: unmatched ')' at position %d", ErrUnbalancedParens, s.Pos)
			}
		case s.OpType() != NotOperator:
			// Left-associative: pop anything of equal or higher precedence.
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind == SymOpen || top.Precedence() < s.Precedence() {
					break
				}
				output = append(output, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, s)
		default:
			output = append(output, s)
		}
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.Kind == SymOpen {
			return nil, fmt.Errorf("%w: '(' at position %d never closed", ErrUnbalancedParens, top.Pos)
		}
		output = append(output, top)
	}
	return output, nil
}

// checkPlacement rejects operators that lack a required operand before
// the stream reaches the shunting yard, so malformed input surfaces as
// a pattern error instead of a builder invariant violation.
func checkPlacement(syms []Symbol) error {
	if len(syms) == 0 {
		return ErrEmptyPattern
	}
	if first := syms[0]; first.OpType() != NotOperator {
		return placementErr(first)
	}
	if last := syms[len(syms)-1]; last.OpType() == Binary {
		return placementErr(last)
	}
	for i := 0; i+1 < len(syms); i++ {
		cur, next := syms[i], syms[i+1]
		switch {
		case cur.OpType() == Binary && next.OpType() != NotOperator:
			return placementErr(next)
		case cur.OpType() == Unary && next.OpType() == Unary:
			return placementErr(next)
		case cur.Kind == SymOpen && next.OpType() != NotOperator:
			return placementErr(next)
		case cur.OpType() == Binary && next.Kind == SymClose:
			return placementErr(cur)
		case cur.Kind == SymOpen && next.Kind == SymClose:
			return fmt.Errorf("%w: empty group at position %d", ErrOperatorPlacement, cur.Pos)
		}
	}
	return nil
}

func placementErr(s Symbol) error {
	return fmt.Errorf("%w: %q at position %d", ErrOperatorPlacement, s.String(), s.Pos)
}
