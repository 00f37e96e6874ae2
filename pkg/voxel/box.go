package voxel

import "sort"

// BoundingBox is a minimal axis-aligned box over 8 labeled corner
// points, together with derived range metadata. The derived fields are
// recomputed whenever the corners change; they are never partially
// stale.
type BoundingBox struct {
	corners Corners

	xLow, xHigh int
	yLow, yHigh int
	zLow, zHigh int

	xRange, yRange, zRange int

	// rangeOrder lists the three axes sorted descending by range, with
	// ties broken by x, y, z precedence. The stable ordering drives the
	// axis-slicing decisions downstream and must be reproducible.
	rangeOrder [3]Axis
}

// NewBoundingBox builds the minimal box enclosing the given points.
// It fails with EmptyInputError when called with zero points.
func NewBoundingBox(points []Voxel) (*BoundingBox, error) {
	if len(points) == 0 {
		return nil, EmptyInputError{Op: "NewBoundingBox"}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		for _, a := range []Axis{AxisX, AxisY, AxisZ} {
			c := p.Component(a)
			if c < lo.Component(a) {
				lo = lo.WithComponent(a, c)
			}
			if c > hi.Component(a) {
				hi = hi.WithComponent(a, c)
			}
		}
	}
	b := &BoundingBox{corners: cornersFromExtents(lo, hi)}
	b.recompute()
	return b, nil
}

// NewBoundingBoxFromCorners builds a box directly from 8 corner
// points. The corners are copied and the derived metadata recomputed.
// The input is assumed well formed; no axis-alignment validation is
// performed.
func NewBoundingBoxFromCorners(c Corners) *BoundingBox {
	b := &BoundingBox{corners: c.Clone()}
	b.recompute()
	return b
}

// recompute rebuilds the extents, ranges, and axis ordering from the
// current corners. Extents come from corner 0 (all-low) and corner 7
// (all-high).
func (b *BoundingBox) recompute() {
	lo, hi := b.corners[0], b.corners[7]
	b.xLow, b.xHigh = lo.X, hi.X
	b.yLow, b.yHigh = lo.Y, hi.Y
	b.zLow, b.zHigh = lo.Z, hi.Z
	b.xRange = abs(b.xHigh - b.xLow)
	b.yRange = abs(b.yHigh - b.yLow)
	b.zRange = abs(b.zHigh - b.zLow)

	order := [3]Axis{AxisX, AxisY, AxisZ}
	ranges := [3]int{b.xRange, b.yRange, b.zRange}
	sort.SliceStable(order[:], func(i, j int) bool {
		return ranges[order[i]] > ranges[order[j]]
	})
	b.rangeOrder = order
}

// Corners returns a copy of the 8 labeled corners.
func (b *BoundingBox) Corners() Corners {
	return b.corners.Clone()
}

// Corner returns a single labeled corner.
func (b *BoundingBox) Corner(c Corner) Voxel {
	return b.corners[c]
}

// Low returns the low extent along the given axis.
func (b *BoundingBox) Low(a Axis) int {
	switch a {
	case AxisX:
		return b.xLow
	case AxisY:
		return b.yLow
	default:
		return b.zLow
	}
}

// High returns the high extent along the given axis.
func (b *BoundingBox) High(a Axis) int {
	switch a {
	case AxisX:
		return b.xHigh
	case AxisY:
		return b.yHigh
	default:
		return b.zHigh
	}
}

// Range returns the absolute extent difference along the given axis.
func (b *BoundingBox) Range(a Axis) int {
	switch a {
	case AxisX:
		return b.xRange
	case AxisY:
		return b.yRange
	default:
		return b.zRange
	}
}

// RangeOrder returns the three axes sorted descending by range, ties
// broken by x, y, z precedence.
func (b *BoundingBox) RangeOrder() [3]Axis {
	return b.rangeOrder
}

// Contains reports whether p lies within the box, bounds inclusive.
func (b *BoundingBox) Contains(p Voxel) bool {
	return p.X >= b.xLow && p.X <= b.xHigh &&
		p.Y >= b.yLow && p.Y <= b.yHigh &&
		p.Z >= b.zLow && p.Z <= b.zHigh
}

// containsOn reports whether c lies within the box's extent on axis a,
// bounds inclusive.
func (b *BoundingBox) containsOn(a Axis, c int) bool {
	return c >= b.Low(a) && c <= b.High(a)
}

// Intersect computes the intersection of two boxes. Each of the 12
// edges of either box is clipped against the other box: when the
// edge's two fixed coordinates lie within the other box, the edge's
// varying span is clamped to the other box's extent on that axis and
// the clamped endpoints are recorded as corners of the intersection.
// The accumulated partial corners are then repaired with Correct.
//
// On success the complete intersection box is returned with ok true.
// On failure (the boxes are disjoint on some axis, so too few corners
// were recorded) ok is false and the best-effort partial corners are
// returned for inspection; callers must check ok before using the box.
func Intersect(b1, b2 *BoundingBox) (*BoundingBox, PartialCorners, bool) {
	var partial PartialCorners
	clipEdges(b1, b2, &partial)
	clipEdges(b2, b1, &partial)

	corners, ok := partial.Correct()
	if !ok {
		return nil, partial, false
	}
	return NewBoundingBoxFromCorners(corners), partial, true
}

// clipEdges clips every edge of src against dst, recording clipped
// endpoints into partial. Edges are grouped by their varying axis: for
// each axis a there are four edges, one per combination of low/high
// extents on the other two axes.
func clipEdges(src, dst *BoundingBox, partial *PartialCorners) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		bit := axisBit(a)
		for base := 0; base < NumCorners; base++ {
			if base&bit != 0 {
				continue // enumerate each edge once, from its low end
			}
			loCorner := Corner(base)
			hiCorner := Corner(base | bit)
			lo := src.corners[loCorner]
			hi := src.corners[hiCorner]

			// The two fixed coordinates must sit inside dst for the
			// edge to touch the intersection at all.
			inside := true
			for _, other := range []Axis{AxisX, AxisY, AxisZ} {
				if other == a {
					continue
				}
				if !dst.containsOn(other, lo.Component(other)) {
					inside = false
					break
				}
			}
			if !inside {
				continue
			}

			// Clamp the varying span to dst's extent on axis a.
			spanLo := lo.Component(a)
			spanHi := hi.Component(a)
			if spanLo < dst.Low(a) {
				spanLo = dst.Low(a)
			}
			if spanHi > dst.High(a) {
				spanHi = dst.High(a)
			}
			if spanLo > spanHi {
				continue // edge lies entirely outside dst on axis a
			}

			partial.Set(loCorner, lo.WithComponent(a, spanLo))
			partial.Set(hiCorner, hi.WithComponent(a, spanHi))
		}
	}
}
