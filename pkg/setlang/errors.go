package setlang

import "fmt"

// InvalidCharacterError reports a rune outside the equation alphabet.
type InvalidCharacterError struct {
	Char rune
	Pos  int
}

func (e InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

// InvalidNegationError reports a misplaced negation: a negated closing
// parenthesis, a directly negated subtraction or symmetric-difference
// operator (negate an enclosing group instead), or an equation ending
// in an operator, negation, or opening parenthesis.
type InvalidNegationError struct {
	Pos    int
	Detail string
}

func (e InvalidNegationError) Error() string {
	return fmt.Sprintf("invalid negation at position %d: %s", e.Pos, e.Detail)
}

// UnbalancedGroupingError reports mismatched parenthesis counts.
type UnbalancedGroupingError struct {
	Opens  int
	Closes int
}

func (e UnbalancedGroupingError) Error() string {
	return fmt.Sprintf("unbalanced grouping: %d opening vs %d closing parentheses", e.Opens, e.Closes)
}

// InvalidJunctionError reports two adjacent tokens that cannot follow
// one another, such as an empty group, an operator before a closing
// parenthesis, or two adjacent constants.
type InvalidJunctionError struct {
	Pos        int
	Prev, Next string
}

func (e InvalidJunctionError) Error() string {
	switch {
	case e.Prev == "" && e.Next == "":
		return "invalid junction: empty equation"
	case e.Prev == "":
		return fmt.Sprintf("invalid junction at position %d: equation cannot start with %q", e.Pos, e.Next)
	default:
		return fmt.Sprintf("invalid junction at position %d: %q cannot follow %q", e.Pos, e.Next, e.Prev)
	}
}

// MalformedExpressionError reports a token sequence that cannot form
// an expression, such as an exactly-two-token sub-equation. On
// validated input it indicates an AST-generation bug rather than bad
// user input.
type MalformedExpressionError struct {
	Tokens []string
}

func (e MalformedExpressionError) Error() string {
	return fmt.Sprintf("malformed expression: %v", e.Tokens)
}
