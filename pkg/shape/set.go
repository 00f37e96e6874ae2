// Package shape provides VoxelSet, the owning container for voxel
// collections, and the shape types built on it: rasterized lines and
// polygon layers. A VoxelSet keeps derived spatial metadata (bounding
// box, axis-sliced directory, joint bounding box) consistent with its
// fill voxels at all times.
package shape

import (
	"sort"

	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/voxel"
)

// VoxelSet owns a list of origin-relative fill voxels plus derived
// metadata. Any mutation of the fill voxels or origin goes through a
// method that recomputes the derived state before the set is next
// read; accessors return copies, never internal slices.
//
// An empty fill list is a valid zero-volume state (no bounding box,
// empty directory, empty joint box), not an error: the intersection of
// disjoint shapes must be a first-class value.
type VoxelSet struct {
	id  registry.Identifier
	reg registry.Registry

	origin voxel.Voxel
	fill   []voxel.Voxel // origin-relative

	bounds    *voxel.BoundingBox // nil in the zero-volume state
	directory map[int][]voxel.Voxel
	joint     *voxel.JointBoundingBox
}

// New creates a VoxelSet with the given origin and origin-relative
// fill voxels, registers it, and computes its derived state. The fill
// slice is copied.
func New(reg registry.Registry, origin voxel.Voxel, fill []voxel.Voxel) *VoxelSet {
	vs := &VoxelSet{
		reg:    reg,
		origin: origin,
		fill:   voxel.CloneSlice(fill),
	}
	vs.id = reg.IssueID()
	reg.Register(vs.id, vs)
	vs.Recompute()
	return vs
}

// ID returns the set's registry identifier.
func (vs *VoxelSet) ID() registry.Identifier {
	return vs.id
}

// Origin returns the set's origin offset.
func (vs *VoxelSet) Origin() voxel.Voxel {
	return vs.origin
}

// SetOrigin moves the set's origin and recomputes derived state.
func (vs *VoxelSet) SetOrigin(o voxel.Voxel) {
	vs.origin = o
	vs.Recompute()
}

// FillVoxels returns the fill voxels with the origin applied. The
// returned slice is a fresh copy.
func (vs *VoxelSet) FillVoxels() []voxel.Voxel {
	out := make([]voxel.Voxel, len(vs.fill))
	for i, v := range vs.fill {
		out[i] = v.Add(vs.origin)
	}
	return out
}

// RelativeFillVoxels returns a copy of the origin-relative fill voxels.
func (vs *VoxelSet) RelativeFillVoxels() []voxel.Voxel {
	return voxel.CloneSlice(vs.fill)
}

// Count returns the number of fill voxels.
func (vs *VoxelSet) Count() int {
	return len(vs.fill)
}

// SetFill replaces the fill voxels (origin-relative) and recomputes
// derived state. The slice is copied.
func (vs *VoxelSet) SetFill(fill []voxel.Voxel) {
	vs.fill = voxel.CloneSlice(fill)
	vs.Recompute()
}

// Bounds returns the bounding box over the origin-adjusted fill
// voxels, or false in the zero-volume state.
func (vs *VoxelSet) Bounds() (*voxel.BoundingBox, bool) {
	if vs.bounds == nil {
		return nil, false
	}
	return vs.bounds, true
}

// Joint returns the joint bounding box over the per-slice boxes.
func (vs *VoxelSet) Joint() *voxel.JointBoundingBox {
	return vs.joint
}

// DominantAxis returns the largest-range axis of the bounding box, or
// false in the zero-volume state.
func (vs *VoxelSet) DominantAxis() (voxel.Axis, bool) {
	if vs.bounds == nil {
		return voxel.AxisX, false
	}
	return vs.bounds.RangeOrder()[0], true
}

// SliceCoords returns the occupied dominant-axis coordinates in
// ascending order.
func (vs *VoxelSet) SliceCoords() []int {
	coords := make([]int, 0, len(vs.directory))
	for c := range vs.directory {
		coords = append(coords, c)
	}
	sort.Ints(coords)
	return coords
}

// Slice returns a copy of the directory bucket at the given
// dominant-axis coordinate. Bucket voxels are origin-adjusted and
// sorted by the second- then third-range axis.
func (vs *VoxelSet) Slice(coord int) []voxel.Voxel {
	return voxel.CloneSlice(vs.directory[coord])
}

// Recompute rebuilds all derived state from the current fill voxels
// and origin. Callers that mutate state through SetOrigin or SetFill
// get this automatically; it is exported for shape types that adjust
// their own storage.
func (vs *VoxelSet) Recompute() {
	vs.directory = make(map[int][]voxel.Voxel)
	if len(vs.fill) == 0 {
		vs.bounds = nil
		vs.joint = voxel.NewJointBoundingBox(nil)
		return
	}

	abs := vs.FillVoxels()
	bounds, err := voxel.NewBoundingBox(abs)
	if err != nil {
		// Unreachable: the empty case is handled above.
		panic(err)
	}
	vs.bounds = bounds

	order := bounds.RangeOrder()
	dom, second, third := order[0], order[1], order[2]

	// Bucket every voxel by its dominant-axis coordinate over the full
	// box range, keeping only non-empty buckets.
	for _, v := range abs {
		c := v.Component(dom)
		vs.directory[c] = append(vs.directory[c], v)
	}

	boxes := make([]*voxel.BoundingBox, 0, len(vs.directory))
	for _, coord := range vs.SliceCoords() {
		bucket := vs.directory[coord]
		sort.SliceStable(bucket, func(i, j int) bool {
			if a, b := bucket[i].Component(second), bucket[j].Component(second); a != b {
				return a < b
			}
			return bucket[i].Component(third) < bucket[j].Component(third)
		})
		sliceBox, err := voxel.NewBoundingBox(bucket)
		if err != nil {
			panic(err)
		}
		boxes = append(boxes, sliceBox)
	}
	vs.joint = voxel.NewJointBoundingBox(boxes)
}

// FindPoint locates an origin-adjusted point in the set. It resolves
// the dominant-axis bucket directly, then binary-searches the bucket
// by the second-range axis, falling through to the third on ties. It
// returns the index within the bucket and whether the point is
// present.
func (vs *VoxelSet) FindPoint(p voxel.Voxel) (int, bool) {
	if vs.bounds == nil {
		return 0, false
	}
	order := vs.bounds.RangeOrder()
	dom, second, third := order[0], order[1], order[2]

	bucket, ok := vs.directory[p.Component(dom)]
	if !ok {
		return 0, false
	}

	ps, pt := p.Component(second), p.Component(third)
	i := sort.Search(len(bucket), func(i int) bool {
		if s := bucket[i].Component(second); s != ps {
			return s > ps
		}
		return bucket[i].Component(third) >= pt
	})
	for ; i < len(bucket); i++ {
		if bucket[i].Component(second) != ps || bucket[i].Component(third) != pt {
			break
		}
		if bucket[i] == p {
			return i, true
		}
	}
	return 0, false
}

// Contains reports whether the origin-adjusted point p is a fill voxel.
func (vs *VoxelSet) Contains(p voxel.Voxel) bool {
	_, ok := vs.FindPoint(p)
	return ok
}

// Release detaches the set from its registry and clears its storage.
// The set must not be used afterwards; doing so is a caller bug.
func (vs *VoxelSet) Release() {
	vs.reg.Unregister(vs.id)
	vs.reg.RemoveID(vs.id)
	vs.fill = nil
	vs.directory = nil
	vs.bounds = nil
	vs.joint = nil
}

// registryOf exposes the registry to shape types in this package.
func (vs *VoxelSet) registryOf() registry.Registry {
	return vs.reg
}
