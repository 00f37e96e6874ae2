package voxel

// Corner indexes the 8 corners of an axis-aligned box. The index is a
// bit pattern over the unit cube: bit 0 selects the x extent (0 = low,
// 1 = high), bit 1 the y extent, bit 2 the z extent. Corner 0 is the
// all-low corner, corner 7 the all-high corner.
type Corner int

const NumCorners = 8

// axisBit returns the bit mask selecting axis a in a corner index.
func axisBit(a Axis) int {
	return 1 << int(a)
}

// high reports whether corner c sits at the high extent of axis a.
func (c Corner) high(a Axis) bool {
	return int(c)&axisBit(a) != 0
}

// Corners holds the complete set of 8 labeled corner points of a box.
// The value at index i must agree with i's bit pattern: component a is
// the low extent when bit a of i is clear and the high extent when set.
type Corners [8]Voxel

// Clone returns a copy of the corner set.
func (c Corners) Clone() Corners {
	return c
}

// cornersFromExtents rebuilds all 8 corners from per-axis extents.
func cornersFromExtents(lo, hi Voxel) Corners {
	var out Corners
	for i := Corner(0); i < NumCorners; i++ {
		v := lo
		for _, a := range []Axis{AxisX, AxisY, AxisZ} {
			if i.high(a) {
				v = v.WithComponent(a, hi.Component(a))
			}
		}
		out[i] = v
	}
	return out
}

// PartialCorners is the scratch state used while intersecting two
// boxes: each of the 8 corner slots is either a known voxel or absent.
// It only ever exists between an intersection pass and the Correct
// call that repairs it.
type PartialCorners struct {
	pts     [8]Voxel
	defined [8]bool
}

// Set records a known corner. Setting an already known corner simply
// overwrites it; the intersection passes only ever write consistent
// values for the same slot.
func (p *PartialCorners) Set(c Corner, v Voxel) {
	p.pts[c] = v
	p.defined[c] = true
}

// Get returns the corner value and whether it is known.
func (p *PartialCorners) Get(c Corner) (Voxel, bool) {
	return p.pts[c], p.defined[c]
}

// DefinedCount returns how many of the 8 corners are known.
func (p *PartialCorners) DefinedCount() int {
	n := 0
	for _, d := range p.defined {
		if d {
			n++
		}
	}
	return n
}

// mask returns the bitmask of defined corner indices.
func (p *PartialCorners) mask() uint8 {
	var m uint8
	for i, d := range p.defined {
		if d {
			m |= 1 << i
		}
	}
	return m
}

// sufficientCorners reports whether a set of known corners (given as a
// bitmask over corner indices) determines the full box. A known corner
// pins one extent per axis, chosen by the matching bit of its index,
// so the set is sufficient exactly when, for every axis, some known
// corner sits at the low extent and some known corner sits at the high
// extent. This is the truth-table definition; the propagation rules in
// Correct are guaranteed to terminate whenever it holds.
func sufficientCorners(mask uint8) bool {
	if mask == 0 {
		return false
	}
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		bit := axisBit(a)
		var low, high bool
		for i := 0; i < NumCorners; i++ {
			if mask&(1<<i) == 0 {
				continue
			}
			if i&bit != 0 {
				high = true
			} else {
				low = true
			}
		}
		if !low || !high {
			return false
		}
	}
	return true
}

// Correct repairs a partial corner set into a complete one. It fails
// when one or zero corners are known (a single point cannot determine
// a box) or when the known-corner pattern is insufficient to pin both
// extents of every axis. Otherwise it runs a fixed-point propagation
// over the cube's adjacency structure: any two known corners infer
// every corner whose index mixes their bits axis by axis (a pair
// across a face diagonal yields the other two corners of that face, an
// antipodal pair yields the whole box). The loop terminates because
// the known set only grows, and the sufficiency pre-check guarantees
// it reaches all 8 corners.
//
// Correct is idempotent: applied to an already complete corner set it
// succeeds and returns the same corners.
func (p *PartialCorners) Correct() (Corners, bool) {
	if p.DefinedCount() <= 1 {
		return Corners{}, false
	}
	if !sufficientCorners(p.mask()) {
		return Corners{}, false
	}

	pts := p.pts
	defined := p.defined

	for {
		progressed := false
		for i := Corner(0); i < NumCorners; i++ {
			if !defined[i] {
				continue
			}
			for j := i + 1; j < NumCorners; j++ {
				if !defined[j] {
					continue
				}
				for k := Corner(0); k < NumCorners; k++ {
					if defined[k] {
						continue
					}
					v, ok := mixCorner(i, j, pts[i], pts[j], k)
					if !ok {
						continue
					}
					pts[k] = v
					defined[k] = true
					progressed = true
				}
			}
		}
		if !progressed {
			break
		}
	}

	for _, d := range defined {
		if !d {
			// Unreachable when the sufficiency check passed; kept as a
			// hard failure rather than returning a half-built box.
			return Corners{}, false
		}
	}
	return pts, true
}

// mixCorner infers corner k from known corners i and j. Axis by axis,
// k's coordinate is taken from whichever of i and j shares k's bit on
// that axis; if neither does, k is not inferable from this pair.
func mixCorner(i, j Corner, vi, vj Voxel, k Corner) (Voxel, bool) {
	var out Voxel
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		switch {
		case k.high(a) == i.high(a):
			out = out.WithComponent(a, vi.Component(a))
		case k.high(a) == j.high(a):
			out = out.WithComponent(a, vj.Component(a))
		default:
			return Voxel{}, false
		}
	}
	return out, true
}
