// Package sdfvox bridges signed-distance solids from the
// github.com/deadsy/sdfx CAD library into voxel sets: a solid is
// sampled on the integer lattice spanning its bounding box and every
// lattice point at or inside the surface becomes a fill voxel.
package sdfvox

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/shape"
	"github.com/chazu/voxform/pkg/voxel"
)

// InvalidResolutionError reports a non-positive sampling resolution.
type InvalidResolutionError struct {
	Resolution float64
}

func (e InvalidResolutionError) Error() string {
	return fmt.Sprintf("sdfvox: resolution must be positive, got %g", e.Resolution)
}

// Voxelize samples s at resolution lattice points per model unit and
// returns the voxels whose sample lies on or inside the surface
// (signed distance <= 0). A solid thinner than the lattice spacing can
// come back as a valid zero-volume set.
func Voxelize(reg registry.Registry, s sdf.SDF3, resolution float64) (*shape.VoxelSet, error) {
	if resolution <= 0 {
		return nil, InvalidResolutionError{Resolution: resolution}
	}

	bb := s.BoundingBox()
	x0, x1 := lattice(bb.Min.X, bb.Max.X, resolution)
	y0, y1 := lattice(bb.Min.Y, bb.Max.Y, resolution)
	z0, z1 := lattice(bb.Min.Z, bb.Max.Z, resolution)

	var fill []voxel.Voxel
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			for z := z0; z <= z1; z++ {
				p := v3.Vec{
					X: float64(x) / resolution,
					Y: float64(y) / resolution,
					Z: float64(z) / resolution,
				}
				if s.Evaluate(p) <= 0 {
					fill = append(fill, voxel.Voxel{X: x, Y: y, Z: z})
				}
			}
		}
	}
	return shape.New(reg, voxel.Voxel{}, fill), nil
}

// lattice returns the inclusive integer sample range covering
// [lo, hi] scaled by the resolution.
func lattice(lo, hi, resolution float64) (int, int) {
	return int(math.Floor(lo * resolution)), int(math.Ceil(hi * resolution))
}

// Box voxelizes an x by y by z box with its minimum corner at the
// origin. sdf.Box3D centers the box, so it is shifted by its half
// dimensions first.
func Box(reg registry.Registry, x, y, z, resolution float64) (*shape.VoxelSet, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, err
	}
	m := sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2})
	return Voxelize(reg, sdf.Transform3D(s, m), resolution)
}

// Sphere voxelizes a sphere of the given radius centered at the
// origin.
func Sphere(reg registry.Registry, radius, resolution float64) (*shape.VoxelSet, error) {
	s, err := sdf.Sphere3D(radius)
	if err != nil {
		return nil, err
	}
	return Voxelize(reg, s, resolution)
}

// Cylinder voxelizes a cylinder of the given height and radius
// centered at the origin with its axis along z.
func Cylinder(reg registry.Registry, height, radius, resolution float64) (*shape.VoxelSet, error) {
	s, err := sdf.Cylinder3D(height, radius, 0)
	if err != nil {
		return nil, err
	}
	return Voxelize(reg, s, resolution)
}
