package shape

import "github.com/chazu/voxform/pkg/voxel"

// Graph3DParametric rasterizes the segment from p1 to p2 into a
// connected voxel path, endpoints inclusive. It walks one unit at a
// time along the axis of greatest absolute delta (ties broken toward
// y, then x, then z) while accumulating the other two deltas as
// remainders, stepping a minor axis by one unit whenever its remainder
// reaches the dominant delta. The path always has max(|dx|,|dy|,|dz|)+1
// points. A zero dominant delta yields the single start point.
//
// The walk is directional: tracing p2 to p1 does not in general
// produce the reverse of p1 to p2, because the remainders accumulate
// from the start point. Edge generation double-traces shared edges to
// compensate; do not rely on symmetry here.
func Graph3DParametric(p1, p2 voxel.Voxel) []voxel.Voxel {
	d := p2.Sub(p1)
	ax, ay, az := iabs(d.X), iabs(d.Y), iabs(d.Z)

	var dom voxel.Axis
	switch {
	case ay >= ax && ay >= az:
		dom = voxel.AxisY
	case ax >= az:
		dom = voxel.AxisX
	default:
		dom = voxel.AxisZ
	}

	n := iabs(d.Component(dom))
	if n == 0 {
		return []voxel.Voxel{p1}
	}

	minorA, minorB := minorAxes(dom)
	deltaA, deltaB := iabs(d.Component(minorA)), iabs(d.Component(minorB))
	stepDom := isign(d.Component(dom))
	stepA := isign(d.Component(minorA))
	stepB := isign(d.Component(minorB))

	out := make([]voxel.Voxel, 0, n+1)
	cur := p1
	out = append(out, cur)

	accA, accB := 0, 0
	for i := 0; i < n; i++ {
		cur = cur.WithComponent(dom, cur.Component(dom)+stepDom)
		accA += deltaA
		if accA >= n {
			cur = cur.WithComponent(minorA, cur.Component(minorA)+stepA)
			accA -= n
		}
		accB += deltaB
		if accB >= n {
			cur = cur.WithComponent(minorB, cur.Component(minorB)+stepB)
			accB -= n
		}
		out = append(out, cur)
	}
	return out
}

// minorAxes returns the two non-dominant axes in x, y, z order.
func minorAxes(dom voxel.Axis) (voxel.Axis, voxel.Axis) {
	switch dom {
	case voxel.AxisX:
		return voxel.AxisY, voxel.AxisZ
	case voxel.AxisY:
		return voxel.AxisX, voxel.AxisZ
	default:
		return voxel.AxisX, voxel.AxisY
	}
}

func iabs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func isign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
