package composite

import "fmt"

// UnboundNameError reports an equation leaf that names no bound
// VoxelSet at interpretation time.
type UnboundNameError struct {
	Name string
}

func (e UnboundNameError) Error() string {
	return fmt.Sprintf("composite: equation references unbound name %q", e.Name)
}

// UnknownOperationError reports an AST operator token that the
// interpreter does not recognize. Validated equations never produce
// one; seeing it means the AST was built or mutated outside the
// parser.
type UnknownOperationError struct {
	Op string
}

func (e UnknownOperationError) Error() string {
	return fmt.Sprintf("composite: unknown operation %q in AST", e.Op)
}

// NoEquationError reports an Evaluate call before any equation was
// set.
type NoEquationError struct{}

func (NoEquationError) Error() string {
	return "composite: no equation set"
}
