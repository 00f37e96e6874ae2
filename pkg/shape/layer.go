package shape

import (
	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/voxel"
)

// EdgeKey identifies a rasterized polygon edge by its ordered
// endpoint pair. Edges are directional: the key {A,B} and the key
// {B,A} hold independently traced paths.
type EdgeKey struct {
	A, B voxel.Voxel
}

// Layer is a VoxelSet specialized to a closed polygon. Its ordered
// vertex list defines the outline (wrapping from the last vertex back
// to the first); GenerateEdges rasterizes the outline and FillPolygon
// fills the interior by recursive axis slicing.
type Layer struct {
	*VoxelSet
	vertices []voxel.Voxel // origin-relative, ordered
	edges    map[EdgeKey][]voxel.Voxel
}

// NewLayer creates a layer over the given origin-relative vertices.
// The initial fill is the vertex list itself; call GenerateEdges or
// FillPolygon to expand it. Zero vertices fail with EmptyInputError.
func NewLayer(reg registry.Registry, origin voxel.Voxel, vertices []voxel.Voxel) (*Layer, error) {
	if len(vertices) == 0 {
		return nil, voxel.EmptyInputError{Op: "NewLayer"}
	}
	l := &Layer{
		VoxelSet: New(reg, origin, dedupVoxels(vertices)),
		vertices: voxel.CloneSlice(vertices),
	}
	return l, nil
}

// Vertices returns a copy of the origin-relative vertex list.
func (l *Layer) Vertices() []voxel.Voxel {
	return voxel.CloneSlice(l.vertices)
}

// GenerateEdges rasterizes every consecutive vertex pair, wrapping
// from the last vertex back to the first, and rebuilds the fill
// voxels as the vertices plus all edge interiors. The full inclusive
// path of each edge is stored in the edge directory under its
// directional key; a pair of adjacent vertices therefore contributes
// two independently traced paths, which absorbs the directional
// asymmetry of the rasterizer.
//
// A single-vertex layer produces one self-keyed edge holding just
// that vertex.
func (l *Layer) GenerateEdges() {
	l.edges = make(map[EdgeKey][]voxel.Voxel)

	if len(l.vertices) == 1 {
		v := l.vertices[0]
		l.edges[EdgeKey{v, v}] = []voxel.Voxel{v}
		l.SetFill([]voxel.Voxel{v})
		return
	}

	fill := dedupVoxels(l.vertices)
	seen := make(map[voxel.Voxel]struct{}, len(fill))
	for _, v := range fill {
		seen[v] = struct{}{}
	}

	n := len(l.vertices)
	for i := 0; i < n; i++ {
		a := l.vertices[i]
		b := l.vertices[(i+1)%n]
		path := Graph3DParametric(a, b)
		l.edges[EdgeKey{a, b}] = voxel.CloneSlice(path)

		// Endpoints are already in the fill via the vertex list; only
		// interiors accumulate here.
		for _, p := range path[1 : maxInt(len(path)-1, 1)] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			fill = append(fill, p)
		}
	}
	l.SetFill(fill)
}

// EdgeVoxels returns the deduplicated voxels of all rasterized edges,
// origin-relative, in first-traced order. GenerateEdges must have run.
func (l *Layer) EdgeVoxels() []voxel.Voxel {
	var out []voxel.Voxel
	seen := make(map[voxel.Voxel]struct{})
	// Iterate edges in vertex order for deterministic output.
	n := len(l.vertices)
	for i := 0; i < n; i++ {
		a := l.vertices[i]
		b := l.vertices[(i+1)%n]
		for _, p := range l.edges[EdgeKey{a, b}] {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	if n == 1 {
		v := l.vertices[0]
		return voxel.CloneSlice(l.edges[EdgeKey{v, v}])
	}
	return out
}

// Edge returns the rasterized path stored under the directional key
// (a, b), if present.
func (l *Layer) Edge(a, b voxel.Voxel) ([]voxel.Voxel, bool) {
	path, ok := l.edges[EdgeKey{a, b}]
	if !ok {
		return nil, false
	}
	return voxel.CloneSlice(path), true
}

// FillPolygon fills the polygon interior. The outline's axis-sliced
// directory partitions the boundary voxels by their dominant-axis
// coordinate; each bucket becomes a scratch layer whose own fill
// reduces the problem by one dimension, bottoming out at collinear
// point runs. The resulting voxels are accumulated into the layer's
// fill.
func (l *Layer) FillPolygon() {
	if l.edges == nil {
		l.GenerateEdges()
	}
	if l.spannedAxes() <= 1 {
		// Collinear outline: the edges already are the fill.
		return
	}

	origin := l.Origin()
	fill := l.RelativeFillVoxels()
	seen := make(map[voxel.Voxel]struct{}, len(fill))
	for _, v := range fill {
		seen[v] = struct{}{}
	}

	for _, coord := range l.SliceCoords() {
		bucket := l.Slice(coord)
		if len(bucket) < 2 {
			continue // a lone boundary voxel fills nothing further
		}
		rel := make([]voxel.Voxel, len(bucket))
		for i, v := range bucket {
			rel[i] = v.Sub(origin)
		}

		scratch, err := NewLayer(l.registryOf(), origin, rel)
		if err != nil {
			// Unreachable: bucket is non-empty.
			panic(err)
		}
		scratch.FillPolygon()
		for _, v := range scratch.RelativeFillVoxels() {
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			fill = append(fill, v)
		}
		scratch.Release()
	}

	l.SetFill(fill)
}

// spannedAxes counts the axes along which the layer's bounding box has
// nonzero range.
func (l *Layer) spannedAxes() int {
	bounds, ok := l.Bounds()
	if !ok {
		return 0
	}
	n := 0
	for _, a := range []voxel.Axis{voxel.AxisX, voxel.AxisY, voxel.AxisZ} {
		if bounds.Range(a) > 0 {
			n++
		}
	}
	return n
}

// dedupVoxels returns vs without duplicates, preserving first-seen
// order.
func dedupVoxels(vs []voxel.Voxel) []voxel.Voxel {
	out := make([]voxel.Voxel, 0, len(vs))
	seen := make(map[voxel.Voxel]struct{}, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
