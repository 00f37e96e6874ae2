package setlang

// Equation is a validated, compiled set-algebra equation. It is the
// textual external contract of the expression engine: construction
// fails with a typed error on any malformed source string, never with
// a silently empty result.
type Equation struct {
	source string
	tokens []string
	ast    Node
}

// NewEquation validates source, simplifies it, and compiles its AST.
func NewEquation(source string) (*Equation, error) {
	tokens, err := Validate(source)
	if err != nil {
		return nil, err
	}
	ast, err := BuildAST(tokens)
	if err != nil {
		return nil, err
	}
	return &Equation{source: source, tokens: tokens, ast: ast}, nil
}

// Source returns the original equation string.
func (e *Equation) Source() string {
	return e.source
}

// Tokens returns a copy of the simplified token list.
func (e *Equation) Tokens() []string {
	out := make([]string, len(e.tokens))
	copy(out, e.tokens)
	return out
}

// AST returns the compiled expression tree.
func (e *Equation) AST() Node {
	return e.ast
}

// Names returns the distinct variable names referenced by the
// equation, in first-appearance order. Constants are not included.
func (e *Equation) Names() []string {
	var names []string
	seen := make(map[string]struct{})
	var walk func(n Node)
	walk = func(n Node) {
		switch v := n.(type) {
		case Leaf:
			name := string(v)
			if IsConstant(name) {
				return
			}
			if _, ok := seen[name]; ok {
				return
			}
			seen[name] = struct{}{}
			names = append(names, name)
		case *BinOp:
			walk(v.Left)
			walk(v.Right)
		}
	}
	walk(e.ast)
	return names
}
