package sdfvox

import (
	"testing"

	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/voxel"
)

func TestBoxLatticeCount(t *testing.T) {
	reg := registry.New()
	got, err := Box(reg, 3, 3, 3, 1)
	if err != nil {
		t.Fatalf("Box: %v", err)
	}
	// A 3-unit box with its corner at the origin covers lattice points
	// 0..3 on each axis, surface included.
	if got.Count() != 64 {
		t.Errorf("box voxel count = %d, want 64", got.Count())
	}
	if !got.Contains(voxel.Voxel{X: 0, Y: 0, Z: 0}) || !got.Contains(voxel.Voxel{X: 3, Y: 3, Z: 3}) {
		t.Error("box missing corner lattice points")
	}
	if got.Contains(voxel.Voxel{X: 4, Y: 0, Z: 0}) {
		t.Error("box contains point outside its extent")
	}
}

func TestSphereLatticeCount(t *testing.T) {
	reg := registry.New()
	got, err := Sphere(reg, 3, 1)
	if err != nil {
		t.Fatalf("Sphere: %v", err)
	}
	// Lattice points with x²+y²+z² ≤ 9.
	if got.Count() != 123 {
		t.Errorf("sphere voxel count = %d, want 123", got.Count())
	}
	if !got.Contains(voxel.Voxel{X: 3, Y: 0, Z: 0}) {
		t.Error("sphere missing on-surface pole")
	}
	if got.Contains(voxel.Voxel{X: 2, Y: 2, Z: 2}) {
		t.Error("sphere contains exterior corner point")
	}
}

func TestCylinderExtent(t *testing.T) {
	reg := registry.New()
	got, err := Cylinder(reg, 4, 2, 1)
	if err != nil {
		t.Fatalf("Cylinder: %v", err)
	}
	if !got.Contains(voxel.Voxel{X: 0, Y: 0, Z: 0}) {
		t.Error("cylinder missing its center")
	}
	if !got.Contains(voxel.Voxel{X: 2, Y: 0, Z: 0}) {
		t.Error("cylinder missing on-surface rim point")
	}
	if got.Contains(voxel.Voxel{X: 0, Y: 0, Z: 3}) {
		t.Error("cylinder extends past its half-height")
	}
	if got.Contains(voxel.Voxel{X: 2, Y: 2, Z: 0}) {
		t.Error("cylinder contains point outside its radius")
	}
}

func TestVoxelizeResolutionScales(t *testing.T) {
	reg := registry.New()
	coarse, err := Sphere(reg, 1.5, 1)
	if err != nil {
		t.Fatalf("Sphere coarse: %v", err)
	}
	fine, err := Sphere(reg, 1.5, 2)
	if err != nil {
		t.Fatalf("Sphere fine: %v", err)
	}
	if fine.Count() <= coarse.Count() {
		t.Errorf("doubling resolution did not increase sample count: %d vs %d",
			fine.Count(), coarse.Count())
	}
}

func TestInvalidResolution(t *testing.T) {
	reg := registry.New()
	_, err := Sphere(reg, 1, 0)
	if _, ok := err.(InvalidResolutionError); !ok {
		t.Fatalf("Sphere error = %T (%v), want InvalidResolutionError", err, err)
	}
}
