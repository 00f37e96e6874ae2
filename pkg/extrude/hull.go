package extrude

import "sort"

// point2 is a voxel slice projected onto the two non-dominant axes.
type point2 struct {
	u, v int
}

// cross returns the z-component of (b-a)×(c-a); positive means the
// turn a→b→c is counterclockwise.
func cross(a, b, c point2) int {
	return (b.u-a.u)*(c.v-a.v) - (b.v-a.v)*(c.u-a.u)
}

// convexHull returns the convex hull of pts in counterclockwise order
// without repeating the starting point, using the monotone-chain
// construction: sort by (u, v), then sweep a lower and an upper chain
// dropping any point that would make a clockwise turn. Collinear
// boundary points are dropped. Inputs of fewer than three points come
// back sorted and deduplicated.
func convexHull(pts []point2) []point2 {
	sorted := make([]point2, len(pts))
	copy(sorted, pts)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].u != sorted[j].u {
			return sorted[i].u < sorted[j].u
		}
		return sorted[i].v < sorted[j].v
	})
	dedup := sorted[:0]
	for i, p := range sorted {
		if i > 0 && p == sorted[i-1] {
			continue
		}
		dedup = append(dedup, p)
	}
	sorted = dedup

	if len(sorted) < 3 {
		return sorted
	}

	hull := make([]point2, 0, 2*len(sorted))
	for _, p := range sorted { // lower chain
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(sorted) - 2; i >= 0; i-- { // upper chain
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1] // last point repeats the first
}
