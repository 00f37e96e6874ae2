package setlang

import "strings"

// Node is a compiled set-algebra expression. It is either a Leaf
// (variable name or constant) or a BinOp over two sub-expressions.
// Negation never survives compilation: negated terms are rewritten as
// subtraction from the universal set.
type Node interface {
	node()
	String() string
}

// Leaf is a variable name or one of the constants Ω and ∅.
type Leaf string

func (Leaf) node() {}

func (l Leaf) String() string { return string(l) }

// BinOp applies one of the four binary operators to two
// sub-expressions.
type BinOp struct {
	Op    string
	Left  Node
	Right Node
}

func (*BinOp) node() {}

func (b *BinOp) String() string {
	var sb strings.Builder
	sb.WriteString("(")
	sb.WriteString(b.Left.String())
	sb.WriteString(b.Op)
	sb.WriteString(b.Right.String())
	sb.WriteString(")")
	return sb.String()
}

// item is a work element during AST construction: either a raw token
// or an already built sub-expression.
type item struct {
	tok  string // empty when node is set
	node Node
}

func tokItem(tok string) item  { return item{tok: tok} }
func nodeItem(n Node) item     { return item{node: n} }
func (it item) isTok(s string) bool { return it.tok == s }

// BuildAST compiles a validated token list into an expression tree.
//
// Construction repeatedly reduces the sequence: a negated group
// containing ⊕ becomes Ω - (group), because negation cannot
// distribute through symmetric difference; any other negated group
// has its negation distributed one level into its contents (De
// Morgan for ∪/∩, and !(a-b) rewrites to !a ∪ b, an endpoint that is
// not pushed deeper); the most deeply nested remaining group is then
// compiled recursively; and a flat sequence collapses its operators
// highest precedence first, left to right within a level. Each step
// strictly shrinks the sequence, its grouping depth, or its negation
// count, so the reduction terminates.
//
// Algebraic identities fire as operations collapse: x op x reduces to
// x for ∪/∩ and to ∅ for -/⊕, and ∅- and Ω-involving operations
// short-circuit per set theory.
func BuildAST(tokens []string) (Node, error) {
	items := make([]item, len(tokens))
	for i, t := range tokens {
		items[i] = tokItem(t)
	}
	return build(items)
}

type parenPair struct {
	open, close, depth int
}

// parenPairs locates every matched parenthesis pair with its nesting
// depth.
func parenPairs(items []item) []parenPair {
	var pairs []parenPair
	var stack []int
	for i, it := range items {
		switch {
		case it.isTok(TokOpen):
			stack = append(stack, i)
		case it.isTok(TokClose):
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			pairs = append(pairs, parenPair{open: open, close: i, depth: len(stack)})
		}
	}
	return pairs
}

func containsTok(items []item, tok string) bool {
	for _, it := range items {
		if it.isTok(tok) {
			return true
		}
	}
	return false
}

func build(items []item) (Node, error) {
	for {
		pairs := parenPairs(items)
		if len(pairs) == 0 {
			return buildFlat(items)
		}

		// A negated group with ⊕ anywhere inside becomes Ω - (group).
		rewritten := false
		for _, pr := range pairs {
			if pr.open == 0 || !items[pr.open-1].isTok(TokNegate) {
				continue
			}
			if !containsTok(items[pr.open+1:pr.close], TokSymDiff) {
				continue
			}
			next := make([]item, 0, len(items)+1)
			next = append(next, items[:pr.open-1]...)
			next = append(next, tokItem(TokUniversal), tokItem(TokSubtract))
			next = append(next, items[pr.open:]...)
			items = next
			rewritten = true
			break
		}
		if rewritten {
			continue
		}

		// Distribute negation one level into any other negated group.
		for _, pr := range pairs {
			if pr.open == 0 || !items[pr.open-1].isTok(TokNegate) {
				continue
			}
			inner, err := distribute(items[pr.open+1 : pr.close])
			if err != nil {
				return nil, err
			}
			next := make([]item, 0, len(items)+len(inner))
			next = append(next, items[:pr.open-1]...)
			next = append(next, tokItem(TokOpen))
			next = append(next, inner...)
			next = append(next, tokItem(TokClose))
			next = append(next, items[pr.close+1:]...)
			items = next
			rewritten = true
			break
		}
		if rewritten {
			continue
		}

		// Compile the most deeply nested group first.
		deepest := pairs[0]
		for _, pr := range pairs[1:] {
			if pr.depth > deepest.depth {
				deepest = pr
			}
		}
		sub, err := build(items[deepest.open+1 : deepest.close])
		if err != nil {
			return nil, err
		}
		next := make([]item, 0, len(items))
		next = append(next, items[:deepest.open]...)
		next = append(next, nodeItem(sub))
		next = append(next, items[deepest.close+1:]...)
		items = next
	}
}

// distribute pushes one negation level into a group's contents: each
// top-level operand has its negation toggled, ∪ and ∩ swap, and the
// first top-level subtraction becomes a union whose right side is
// copied verbatim (the !(a-b) → !a ∪ b endpoint). Symmetric
// difference cannot appear here; the caller has already rewritten
// those groups.
func distribute(items []item) ([]item, error) {
	var out []item
	i := 0
	for i < len(items) {
		it := items[i]
		switch {
		case it.isTok(TokNegate):
			// The negation cancels against the toggle: emit the operand
			// untouched.
			operand, next, err := takeOperand(items, i+1)
			if err != nil {
				return nil, err
			}
			out = append(out, operand...)
			i = next
		case it.isTok(TokUnion):
			out = append(out, tokItem(TokIntersect))
			i++
		case it.isTok(TokIntersect):
			out = append(out, tokItem(TokUnion))
			i++
		case it.isTok(TokSubtract):
			out = append(out, tokItem(TokUnion))
			out = append(out, items[i+1:]...)
			return out, nil
		case it.isTok(TokSymDiff):
			return nil, MalformedExpressionError{Tokens: flatten(items)}
		default:
			operand, next, err := takeOperand(items, i)
			if err != nil {
				return nil, err
			}
			out = append(out, negateOperand(operand)...)
			i = next
		}
	}
	return out, nil
}

// takeOperand extracts one operand starting at index i: a single
// leaf/node, or a whole parenthesized group.
func takeOperand(items []item, i int) ([]item, int, error) {
	if i >= len(items) {
		return nil, 0, MalformedExpressionError{Tokens: flatten(items)}
	}
	if items[i].isTok(TokOpen) {
		depth := 0
		for j := i; j < len(items); j++ {
			switch {
			case items[j].isTok(TokOpen):
				depth++
			case items[j].isTok(TokClose):
				depth--
				if depth == 0 {
					return items[i : j+1], j + 1, nil
				}
			}
		}
		return nil, 0, MalformedExpressionError{Tokens: flatten(items)}
	}
	return items[i : i+1], i + 1, nil
}

// negateOperand toggles negation on a single extracted operand,
// folding negated constants immediately.
func negateOperand(operand []item) []item {
	if len(operand) == 1 && operand[0].tok != "" {
		switch operand[0].tok {
		case TokUniversal:
			return []item{tokItem(TokNull)}
		case TokNull:
			return []item{tokItem(TokUniversal)}
		}
	}
	return append([]item{tokItem(TokNegate)}, operand...)
}

func flatten(items []item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if it.tok != "" {
			out = append(out, it.tok)
		} else {
			out = append(out, it.node.String())
		}
	}
	return out
}

// buildFlat collapses a parenthesis-free sequence.
func buildFlat(items []item) (Node, error) {
	for {
		switch len(items) {
		case 0:
			return nil, MalformedExpressionError{}
		case 1:
			return operandNode(items[0])
		case 2:
			// Only a lone negated operand is a valid two-element
			// sequence; anything else is malformed.
			if items[0].isTok(TokNegate) {
				inner, err := operandNode(items[1])
				if err != nil {
					return nil, err
				}
				return negate(inner), nil
			}
			return nil, MalformedExpressionError{Tokens: flatten(items)}
		}

		// Collapse the leftmost operator of the highest precedence
		// present.
		opIdx := -1
		for i, it := range items {
			if it.tok == "" || !IsOperator(it.tok) {
				continue
			}
			if opIdx == -1 || precedence(it.tok) > precedence(items[opIdx].tok) {
				opIdx = i
			}
		}
		if opIdx <= 0 || opIdx >= len(items)-1 {
			return nil, MalformedExpressionError{Tokens: flatten(items)}
		}

		lStart := opIdx - 1
		left, err := operandNode(items[opIdx-1])
		if err != nil {
			return nil, err
		}
		if opIdx >= 2 && items[opIdx-2].isTok(TokNegate) {
			left = negate(left)
			lStart = opIdx - 2
		}

		rEnd := opIdx + 1
		var right Node
		if items[opIdx+1].isTok(TokNegate) {
			if opIdx+2 >= len(items) {
				return nil, MalformedExpressionError{Tokens: flatten(items)}
			}
			right, err = operandNode(items[opIdx+2])
			if err != nil {
				return nil, err
			}
			right = negate(right)
			rEnd = opIdx + 2
		} else {
			right, err = operandNode(items[opIdx+1])
			if err != nil {
				return nil, err
			}
		}

		collapsed := combine(items[opIdx].tok, left, right)
		next := make([]item, 0, len(items))
		next = append(next, items[:lStart]...)
		next = append(next, nodeItem(collapsed))
		next = append(next, items[rEnd+1:]...)
		items = next
	}
}

// operandNode converts a single work item into a Node. Operator and
// grouping tokens are not operands.
func operandNode(it item) (Node, error) {
	if it.node != nil {
		return it.node, nil
	}
	switch it.tok {
	case TokNegate, TokOpen, TokClose:
		return nil, MalformedExpressionError{Tokens: []string{it.tok}}
	default:
		if IsOperator(it.tok) {
			return nil, MalformedExpressionError{Tokens: []string{it.tok}}
		}
		return Leaf(it.tok), nil
	}
}

// negate rewrites !x as Ω - x, folding negated constants.
func negate(x Node) Node {
	if l, ok := x.(Leaf); ok {
		switch string(l) {
		case TokUniversal:
			return Leaf(TokNull)
		case TokNull:
			return Leaf(TokUniversal)
		}
	}
	return &BinOp{Op: TokSubtract, Left: Leaf(TokUniversal), Right: x}
}

// combine builds op(left, right), applying the collapse-time
// identities for equal leaves and for the ∅ and Ω constants.
func combine(op string, left, right Node) Node {
	lLeaf, lOK := left.(Leaf)
	rLeaf, rOK := right.(Leaf)

	if lOK && rOK && lLeaf == rLeaf {
		switch op {
		case TokUnion, TokIntersect:
			return left
		case TokSubtract, TokSymDiff:
			return Leaf(TokNull)
		}
	}
	if lOK && string(lLeaf) == TokNull {
		switch op {
		case TokUnion, TokSymDiff:
			return right
		case TokIntersect, TokSubtract:
			return Leaf(TokNull)
		}
	}
	if rOK && string(rLeaf) == TokNull {
		switch op {
		case TokUnion, TokSymDiff, TokSubtract:
			return left
		case TokIntersect:
			return Leaf(TokNull)
		}
	}
	if lOK && string(lLeaf) == TokUniversal {
		switch op {
		case TokUnion:
			return Leaf(TokUniversal)
		case TokIntersect:
			return right
		}
	}
	if rOK && string(rLeaf) == TokUniversal {
		switch op {
		case TokUnion:
			return Leaf(TokUniversal)
		case TokIntersect:
			return left
		case TokSubtract:
			return Leaf(TokNull)
		}
	}
	return &BinOp{Op: op, Left: left, Right: right}
}
