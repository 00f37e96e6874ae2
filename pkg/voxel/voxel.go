// Package voxel defines the integer 3D point type and the axis-aligned
// bounding-box algebra used throughout voxform: box construction from
// point sets, range metadata, box intersection, and the repair of
// partially known corner data.
package voxel

// Axis identifies one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "axis?"
	}
}

// Voxel is an exact integer 3D coordinate. It is a plain value type;
// storing or returning one always copies it, so callers can never
// alias another object's internal state through a Voxel.
type Voxel struct {
	X, Y, Z int
}

// Component returns the coordinate along the given axis.
func (v Voxel) Component(a Axis) int {
	switch a {
	case AxisX:
		return v.X
	case AxisY:
		return v.Y
	default:
		return v.Z
	}
}

// WithComponent returns a copy of v with the coordinate along a replaced.
func (v Voxel) WithComponent(a Axis, c int) Voxel {
	switch a {
	case AxisX:
		v.X = c
	case AxisY:
		v.Y = c
	default:
		v.Z = c
	}
	return v
}

// Add returns the componentwise sum v + o.
func (v Voxel) Add(o Voxel) Voxel {
	return Voxel{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns the componentwise difference v - o.
func (v Voxel) Sub(o Voxel) Voxel {
	return Voxel{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// IsZero reports whether v is the origin (0,0,0).
func (v Voxel) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// CloneSlice returns a fresh copy of a voxel slice. Voxels are values,
// so copying the slice severs all aliasing with the source.
func CloneSlice(vs []Voxel) []Voxel {
	if vs == nil {
		return nil
	}
	out := make([]Voxel, len(vs))
	copy(out, vs)
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
