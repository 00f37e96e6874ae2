package voxel

// ExportMode selects the representation returned by JointBoundingBox.Export.
type ExportMode int

const (
	// ExportBoxes yields a deep copy of every member BoundingBox.
	ExportBoxes ExportMode = iota
	// ExportCorners yields the corner set of every member box.
	ExportCorners
	// ExportVoxels yields every corner of every member box as one flat
	// voxel list.
	ExportVoxels
)

// JointBoundingBox is an ordered collection of BoundingBoxes treated
// as a single, possibly non-convex region. Members are neither merged
// nor deduplicated; the joint box is purely a union-of-boxes
// abstraction.
type JointBoundingBox struct {
	boxes []*BoundingBox
}

// NewJointBoundingBox builds a joint box over the given members. The
// slice is copied; the member boxes themselves are not mutated by the
// joint box.
func NewJointBoundingBox(boxes []*BoundingBox) *JointBoundingBox {
	out := make([]*BoundingBox, len(boxes))
	copy(out, boxes)
	return &JointBoundingBox{boxes: out}
}

// Len returns the number of member boxes.
func (j *JointBoundingBox) Len() int {
	return len(j.boxes)
}

// Box returns the i-th member box.
func (j *JointBoundingBox) Box(i int) *BoundingBox {
	return j.boxes[i]
}

// Contains reports whether any member box contains p, short-circuiting
// on the first hit. An empty joint box contains nothing.
func (j *JointBoundingBox) Contains(p Voxel) bool {
	for _, b := range j.boxes {
		if b.Contains(p) {
			return true
		}
	}
	return false
}

// ExportResult holds the output of Export in whichever shape the mode
// selected; the fields for the other modes are left nil.
type ExportResult struct {
	Boxes   []*BoundingBox
	Corners []Corners
	Voxels  []Voxel
}

// Export returns the joint box's corner data in the requested mode.
// An unrecognized mode fails with InvalidModeError.
func (j *JointBoundingBox) Export(mode ExportMode) (ExportResult, error) {
	switch mode {
	case ExportBoxes:
		boxes := make([]*BoundingBox, len(j.boxes))
		for i, b := range j.boxes {
			boxes[i] = NewBoundingBoxFromCorners(b.Corners())
		}
		return ExportResult{Boxes: boxes}, nil
	case ExportCorners:
		corners := make([]Corners, len(j.boxes))
		for i, b := range j.boxes {
			corners[i] = b.Corners()
		}
		return ExportResult{Corners: corners}, nil
	case ExportVoxels:
		voxels := make([]Voxel, 0, len(j.boxes)*NumCorners)
		for _, b := range j.boxes {
			c := b.Corners()
			voxels = append(voxels, c[:]...)
		}
		return ExportResult{Voxels: voxels}, nil
	default:
		return ExportResult{}, InvalidModeError{Op: "JointBoundingBox.Export", Mode: int(mode)}
	}
}
