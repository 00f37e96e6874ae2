// Package setlang implements the set-algebra equation mini-language:
// validation and tokenization of equation strings over named voxel
// collections, algebraic simplification, and compilation into an
// operator-precedence AST. The package is independent of voxel data;
// the composite package interprets its ASTs.
//
// The alphabet is exactly {a-z, 0-9, Ω, ∅, ∪, ∩, -, ⊕, !, (, )}:
// variable names are runs of letters and digits, Ω and ∅ are the
// universal and null set constants, ∪ ∩ - ⊕ are the binary operators,
// ! is prefix negation, and parentheses group.
package setlang

// Token spellings. Tokens are plain strings; variable names are any
// other run of letters and digits.
const (
	TokUniversal = "Ω"
	TokNull      = "∅"
	TokUnion     = "∪"
	TokIntersect = "∩"
	TokSubtract  = "-"
	TokSymDiff   = "⊕"
	TokNegate    = "!"
	TokOpen      = "("
	TokClose     = ")"
)

// kind classifies a rune of the equation alphabet.
type kind int

const (
	kindVar kind = iota // a-z, 0-9
	kindConst
	kindBinOp
	kindNegate
	kindOpen
	kindClose
	kindInvalid
)

func kindOf(r rune) kind {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return kindVar
	case r == 'Ω', r == '∅':
		return kindConst
	case r == '∪', r == '∩', r == '-', r == '⊕':
		return kindBinOp
	case r == '!':
		return kindNegate
	case r == '(':
		return kindOpen
	case r == ')':
		return kindClose
	default:
		return kindInvalid
	}
}

// IsOperator reports whether tok is one of the four binary operators.
func IsOperator(tok string) bool {
	switch tok {
	case TokUnion, TokIntersect, TokSubtract, TokSymDiff:
		return true
	default:
		return false
	}
}

// IsConstant reports whether tok is the universal or null set constant.
func IsConstant(tok string) bool {
	return tok == TokUniversal || tok == TokNull
}

// precedence returns the binding strength of a binary operator.
// Symmetric difference binds tighter than the other three, which share
// the lowest level and associate left to right.
func precedence(tok string) int {
	if tok == TokSymDiff {
		return 1
	}
	return 0
}
