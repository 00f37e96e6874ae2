package voxel

import "fmt"

// EmptyInputError reports a construction attempted from zero points.
// It is always fatal to that construction; no default geometry is
// substituted.
type EmptyInputError struct {
	Op string // the constructor that was called
}

func (e EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no input points", e.Op)
}

// InvalidModeError reports an unrecognized mode value passed to an
// export or mode-selecting operation. It indicates a programmer error,
// not bad data.
type InvalidModeError struct {
	Op   string
	Mode int
}

func (e InvalidModeError) Error() string {
	return fmt.Sprintf("%s: invalid mode %d", e.Op, e.Mode)
}
