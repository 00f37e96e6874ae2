package setlang

import (
	"strings"
	"unicode"
)

// Validate checks an equation string against the alphabet and junction
// rules, then tokenizes and algebraically simplifies it. The returned
// token list is ready for BuildAST. Any violation surfaces as a typed
// error; a rejected equation is never partially tokenized.
func Validate(equation string) ([]string, error) {
	stripped := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, equation)

	runes := []rune(stripped)
	if len(runes) == 0 {
		return nil, InvalidJunctionError{Pos: 0, Next: ""}
	}

	// Alphabet check runs first so later checks see only known runes.
	for i, r := range runes {
		if kindOf(r) == kindInvalid {
			return nil, InvalidCharacterError{Char: r, Pos: i}
		}
	}

	if err := checkGrouping(runes); err != nil {
		return nil, err
	}
	if err := checkJunctions(runes); err != nil {
		return nil, err
	}
	if err := checkNegatedSymDiff(runes); err != nil {
		return nil, err
	}

	tokens := tokenize(runes)
	return simplify(tokens), nil
}

// checkGrouping verifies the parenthesis counts match and no closing
// parenthesis appears before its opener.
func checkGrouping(runes []rune) error {
	opens, closes, depth := 0, 0, 0
	for _, r := range runes {
		switch kindOf(r) {
		case kindOpen:
			opens++
			depth++
		case kindClose:
			closes++
			depth--
			if depth < 0 {
				return UnbalancedGroupingError{Opens: opens, Closes: closes}
			}
		}
	}
	if depth != 0 {
		return UnbalancedGroupingError{Opens: opens, Closes: closes}
	}
	return nil
}

// checkJunctions walks adjacent rune pairs enforcing which token kinds
// may follow which. Negation-specific violations (negated closing
// parenthesis, directly negated - or ⊕, dangling trailing operator)
// surface as InvalidNegationError; the rest as InvalidJunctionError.
func checkJunctions(runes []rune) error {
	first := kindOf(runes[0])
	if first == kindBinOp {
		return InvalidJunctionError{Pos: 0, Next: string(runes[0])}
	}

	last := runes[len(runes)-1]
	switch kindOf(last) {
	case kindBinOp, kindNegate, kindOpen:
		return InvalidNegationError{
			Pos:    len(runes) - 1,
			Detail: "equation ends with " + string(last),
		}
	}

	for i := 1; i < len(runes); i++ {
		prev, cur := runes[i-1], runes[i]
		if allowedJunction(kindOf(prev), kindOf(cur)) {
			continue
		}
		if kindOf(prev) == kindNegate {
			switch {
			case kindOf(cur) == kindClose:
				return InvalidNegationError{Pos: i, Detail: "negated closing parenthesis"}
			case cur == '-' || cur == '⊕':
				return InvalidNegationError{
					Pos:    i,
					Detail: string(cur) + " cannot be negated directly; negate an enclosing group",
				}
			}
		}
		return InvalidJunctionError{Pos: i, Prev: string(prev), Next: string(cur)}
	}
	return nil
}

// checkNegatedSymDiff rejects a negated term used as the left operand
// of ⊕, as in "!a⊕b". Symmetric difference binds tighter than
// negation, so the negation would have to capture the whole ⊕
// expression; the caller must negate an enclosing group instead.
// Subtraction binds looser than negation, so "!a-b" stays legal.
func checkNegatedSymDiff(runes []rune) error {
	for i := 0; i < len(runes); i++ {
		if runes[i] != '!' {
			continue
		}
		j := i + 1
		for j < len(runes) && runes[j] == '!' {
			j++
		}
		if j >= len(runes) {
			break
		}
		switch kindOf(runes[j]) {
		case kindVar:
			for j < len(runes) && kindOf(runes[j]) == kindVar {
				j++
			}
		case kindConst:
			j++
		case kindOpen:
			depth := 0
			for ; j < len(runes); j++ {
				if runes[j] == '(' {
					depth++
				} else if runes[j] == ')' {
					depth--
					if depth == 0 {
						j++
						break
					}
				}
			}
		default:
			continue // junction checks already rejected anything else
		}
		if j < len(runes) && runes[j] == '⊕' {
			return InvalidNegationError{
				Pos:    j,
				Detail: "negated term cannot be an operand of ⊕; negate an enclosing group",
			}
		}
	}
	return nil
}

// allowedJunction reports whether a token of kind b may directly
// follow a token of kind a.
func allowedJunction(a, b kind) bool {
	switch a {
	case kindVar:
		return b == kindVar || b == kindBinOp || b == kindClose
	case kindConst, kindClose:
		return b == kindBinOp || b == kindClose
	case kindBinOp, kindNegate, kindOpen:
		return b == kindVar || b == kindConst || b == kindNegate || b == kindOpen
	default:
		return false
	}
}

// tokenize converts a validated rune sequence into tokens, coalescing
// letter/digit runs into single variable names.
func tokenize(runes []rune) []string {
	var tokens []string
	i := 0
	for i < len(runes) {
		if kindOf(runes[i]) == kindVar {
			j := i
			for j < len(runes) && kindOf(runes[j]) == kindVar {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
			continue
		}
		tokens = append(tokens, string(runes[i]))
		i++
	}
	return tokens
}

// simplify applies the algebraic rewrites that need no structural
// analysis: double-negation elimination, negated constants, and
// stripping a redundant all-enclosing group. It loops until no rule
// fires, which terminates because every rule shrinks the token list.
func simplify(tokens []string) []string {
	for {
		changed := false

		for i := 0; i+1 < len(tokens); i++ {
			if tokens[i] != TokNegate {
				continue
			}
			switch tokens[i+1] {
			case TokNegate:
				tokens = append(tokens[:i], tokens[i+2:]...)
				changed = true
			case TokUniversal:
				tokens[i+1] = TokNull
				tokens = append(tokens[:i], tokens[i+1:]...)
				changed = true
			case TokNull:
				tokens[i+1] = TokUniversal
				tokens = append(tokens[:i], tokens[i+1:]...)
				changed = true
			}
			if changed {
				break
			}
		}

		if !changed && len(tokens) > 1 && tokens[0] == TokOpen {
			if matchParen(tokens, 0) == len(tokens)-1 {
				tokens = tokens[1 : len(tokens)-1]
				changed = true
			}
		}

		if !changed {
			return tokens
		}
	}
}

// matchParen returns the index of the closing parenthesis matching the
// opener at index open, or -1 on imbalance.
func matchParen(tokens []string, open int) int {
	depth := 0
	for i := open; i < len(tokens); i++ {
		switch tokens[i] {
		case TokOpen:
			depth++
		case TokClose:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
