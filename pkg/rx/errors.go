package rx

import "errors"

// Formatter and parser errors. All of them mean the pattern itself is
// bad; the caller must supply a different one.
var (
	ErrEmptyPattern       = errors.New("empty pattern")
	ErrUnbalancedBrackets = errors.New("unbalanced bracket expression")
	ErrEmptyBrackets      = errors.New("empty bracket expression")
	ErrUnbalancedParens   = errors.New("unbalanced parentheses")
	ErrOperatorPlacement  = errors.New("invalid operator placement")
	ErrTrailingEscape     = errors.New("trailing backslash")
	ErrInvalidEscape      = errors.New("invalid escape sequence")
)
