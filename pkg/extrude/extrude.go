// Package extrude builds 3D solids and shells from polygon layers:
// straight prisms by vector translation and lofted bodies by per-slice
// convex-hull interpolation between layers. Sections are merged
// through the composite set-operations interpreter.
package extrude

import (
	"fmt"

	"github.com/chazu/voxform/pkg/composite"
	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/shape"
	"github.com/chazu/voxform/pkg/voxel"
)

// Mode selects the body produced by Vector.
type Mode int

const (
	// Solid connects every filled voxel of the source layer to its
	// translated counterpart, producing a solid prism.
	Solid Mode = iota
	// Shell connects only the outline voxels and keeps both end caps
	// filled, producing a hollow tube with closed ends.
	Shell
)

// Vector extrudes layer along vec. A zero vector returns the filled
// source layer unchanged in shape. The source layer is not mutated;
// the returned set is owned by the caller and registered with reg.
func Vector(reg registry.Registry, layer *shape.Layer, vec voxel.Voxel, mode Mode) (*shape.VoxelSet, error) {
	if mode != Solid && mode != Shell {
		return nil, voxel.InvalidModeError{Op: "extrude.Vector", Mode: int(mode)}
	}

	src, err := shape.NewLayer(reg, layer.Origin(), layer.Vertices())
	if err != nil {
		return nil, err
	}
	defer src.Release()
	src.FillPolygon()

	if vec.IsZero() {
		return shape.New(reg, voxel.Voxel{}, src.FillVoxels()), nil
	}

	var sources []voxel.Voxel
	switch mode {
	case Shell:
		for _, v := range src.EdgeVoxels() {
			sources = append(sources, v.Add(src.Origin()))
		}
	default:
		sources = src.FillVoxels()
	}

	seen := make(map[voxel.Voxel]struct{})
	var body []voxel.Voxel
	for _, s := range sources {
		for _, p := range shape.Graph3DParametric(s, s.Add(vec)) {
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			body = append(body, p)
		}
	}

	endCap, err := shape.NewLayer(reg, layer.Origin().Add(vec), layer.Vertices())
	if err != nil {
		return nil, err
	}
	defer endCap.Release()
	endCap.FillPolygon()

	bodySet := shape.New(reg, voxel.Voxel{}, body)
	defer bodySet.Release()
	capSet := shape.New(reg, voxel.Voxel{}, endCap.FillVoxels())
	defer capSet.Release()

	col := composite.New(reg)
	defer col.Release()
	col.Bind("body", bodySet)
	col.Bind("cap", capSet)
	equation := "body∪cap"

	if mode == Shell {
		baseSet := shape.New(reg, voxel.Voxel{}, src.FillVoxels())
		defer baseSet.Release()
		col.Bind("base", baseSet)
		equation = "body∪cap∪base"
	}

	if err := col.SetEquation(equation); err != nil {
		return nil, err
	}
	merged, err := col.Evaluate()
	if err != nil {
		return nil, err
	}
	return shape.New(reg, voxel.Voxel{}, merged.FillVoxels()), nil
}

// Convex lofts an ordered list of layers: every consecutive pair is
// bridged by rasterizing all vertex-to-vertex lines between the two
// vertex sets, slicing the resulting cloud along its dominant axis,
// and replacing each slice with its filled 2D convex hull. All
// per-pair sections are unioned through the composite interpreter.
//
// An empty list fails with EmptyInputError; a single layer returns
// its filled form.
func Convex(reg registry.Registry, layers []*shape.Layer) (*shape.VoxelSet, error) {
	if len(layers) == 0 {
		return nil, voxel.EmptyInputError{Op: "extrude.Convex"}
	}
	if len(layers) == 1 {
		src, err := shape.NewLayer(reg, layers[0].Origin(), layers[0].Vertices())
		if err != nil {
			return nil, err
		}
		defer src.Release()
		src.FillPolygon()
		return shape.New(reg, voxel.Voxel{}, src.FillVoxels()), nil
	}

	col := composite.New(reg)
	defer col.Release()
	var owned []*shape.VoxelSet
	defer func() {
		for _, s := range owned {
			s.Release()
		}
	}()

	equation := ""
	for i := 0; i+1 < len(layers); i++ {
		section, err := loftPair(reg, layers[i], layers[i+1])
		if err != nil {
			return nil, err
		}
		owned = append(owned, section)

		name := fmt.Sprintf("s%d", i)
		col.Bind(name, section)
		if i > 0 {
			equation += "∪"
		}
		equation += name
	}

	if err := col.SetEquation(equation); err != nil {
		return nil, err
	}
	merged, err := col.Evaluate()
	if err != nil {
		return nil, err
	}
	return shape.New(reg, voxel.Voxel{}, merged.FillVoxels()), nil
}

// loftPair bridges two layers into one solid section.
func loftPair(reg registry.Registry, a, b *shape.Layer) (*shape.VoxelSet, error) {
	seen := make(map[voxel.Voxel]struct{})
	var cloud []voxel.Voxel
	for _, va := range a.Vertices() {
		pa := va.Add(a.Origin())
		for _, vb := range b.Vertices() {
			pb := vb.Add(b.Origin())
			for _, p := range shape.Graph3DParametric(pa, pb) {
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				cloud = append(cloud, p)
			}
		}
	}

	cloudSet := shape.New(reg, voxel.Voxel{}, cloud)
	defer cloudSet.Release()

	dom, ok := cloudSet.DominantAxis()
	if !ok {
		return shape.New(reg, voxel.Voxel{}, nil), nil
	}
	bounds, _ := cloudSet.Bounds()
	second, third := bounds.RangeOrder()[1], bounds.RangeOrder()[2]

	sectionSeen := make(map[voxel.Voxel]struct{})
	var section []voxel.Voxel
	for _, coord := range cloudSet.SliceCoords() {
		bucket := cloudSet.Slice(coord)

		pts := make([]point2, len(bucket))
		for i, v := range bucket {
			pts[i] = point2{u: v.Component(second), v: v.Component(third)}
		}
		hull := convexHull(pts)

		verts := make([]voxel.Voxel, len(hull))
		for i, p := range hull {
			v := voxel.Voxel{}
			v = v.WithComponent(dom, coord)
			v = v.WithComponent(second, p.u)
			v = v.WithComponent(third, p.v)
			verts[i] = v
		}

		slice, err := shape.NewLayer(reg, voxel.Voxel{}, verts)
		if err != nil {
			return nil, err
		}
		slice.FillPolygon()
		for _, v := range slice.FillVoxels() {
			if _, dup := sectionSeen[v]; dup {
				continue
			}
			sectionSeen[v] = struct{}{}
			section = append(section, v)
		}
		slice.Release()
	}

	return shape.New(reg, voxel.Voxel{}, section), nil
}
