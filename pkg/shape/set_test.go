package shape

import (
	"testing"

	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/voxel"
)

func TestNewVoxelSetZeroVolume(t *testing.T) {
	reg := registry.New()
	vs := New(reg, voxel.Voxel{}, nil)

	if vs.ID() == "" {
		t.Error("set has no identifier")
	}
	if vs.Count() != 0 {
		t.Errorf("Count() = %d, want 0", vs.Count())
	}
	if _, ok := vs.Bounds(); ok {
		t.Error("zero-volume set should have no bounding box")
	}
	if vs.Joint().Len() != 0 {
		t.Error("zero-volume set should have an empty joint box")
	}
	if vs.Contains(voxel.Voxel{X: 0, Y: 0, Z: 0}) {
		t.Error("zero-volume set should contain nothing")
	}
}

func TestFillVoxelsAppliesOriginAndCopies(t *testing.T) {
	reg := registry.New()
	fill := []voxel.Voxel{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 2, Z: 3}}
	vs := New(reg, voxel.Voxel{X: 10, Y: 20, Z: 30}, fill)

	got := vs.FillVoxels()
	want := []voxel.Voxel{{X: 10, Y: 20, Z: 30}, {X: 11, Y: 22, Z: 33}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("voxel %d = %v, want %v", i, got[i], want[i])
		}
	}

	// Mutating the returned slice must not touch the set.
	got[0] = voxel.Voxel{X: 99, Y: 99, Z: 99}
	if vs.FillVoxels()[0] != want[0] {
		t.Error("accessor returned an aliased slice")
	}
}

func TestSetOriginRecomputes(t *testing.T) {
	reg := registry.New()
	vs := New(reg, voxel.Voxel{}, []voxel.Voxel{{X: 0, Y: 0, Z: 0}, {X: 5, Y: 0, Z: 0}})

	vs.SetOrigin(voxel.Voxel{X: 100, Y: 0, Z: 0})
	bounds, ok := vs.Bounds()
	if !ok {
		t.Fatal("set has no bounds")
	}
	if bounds.Low(voxel.AxisX) != 100 || bounds.High(voxel.AxisX) != 105 {
		t.Errorf("x extent = [%d,%d], want [100,105]", bounds.Low(voxel.AxisX), bounds.High(voxel.AxisX))
	}
	if !vs.Contains(voxel.Voxel{X: 103, Y: 0, Z: 0}) {
		t.Error("set should contain origin-adjusted voxel (103,0,0)")
	}
	if vs.Contains(voxel.Voxel{X: 3, Y: 0, Z: 0}) {
		t.Error("set should not contain pre-move voxel (3,0,0)")
	}
}

func TestDirectorySlicesSorted(t *testing.T) {
	reg := registry.New()
	// x has the largest range, so the directory slices on x; slices
	// must come back sorted by y then z.
	fill := []voxel.Voxel{
		{X: 0, Y: 3, Z: 1}, {X: 0, Y: 1, Z: 2}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 2, Z: 2},
		{X: 9, Y: 0, Z: 0},
	}
	vs := New(reg, voxel.Voxel{}, fill)

	dom, ok := vs.DominantAxis()
	if !ok || dom != voxel.AxisX {
		t.Fatalf("dominant axis = %v, want x", dom)
	}

	slice := vs.Slice(0)
	want := []voxel.Voxel{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 2}, {X: 0, Y: 2, Z: 2}, {X: 0, Y: 3, Z: 1}}
	if len(slice) != len(want) {
		t.Fatalf("slice len = %d, want %d", len(slice), len(want))
	}
	for i := range want {
		if slice[i] != want[i] {
			t.Errorf("slice[%d] = %v, want %v", i, slice[i], want[i])
		}
	}

	coords := vs.SliceCoords()
	if len(coords) != 2 || coords[0] != 0 || coords[1] != 9 {
		t.Errorf("SliceCoords() = %v, want [0 9]", coords)
	}

	// One bounding box per non-empty slice.
	if vs.Joint().Len() != 2 {
		t.Errorf("joint box has %d members, want 2", vs.Joint().Len())
	}
}

func TestFindPoint(t *testing.T) {
	reg := registry.New()
	var fill []voxel.Voxel
	for x := 0; x < 10; x++ {
		for y := 0; y < 3; y++ {
			fill = append(fill, voxel.Voxel{X: x, Y: y, Z: x + y})
		}
	}
	vs := New(reg, voxel.Voxel{}, fill)

	for _, p := range fill {
		if !vs.Contains(p) {
			t.Errorf("FindPoint missed fill voxel %v", p)
		}
	}

	misses := []voxel.Voxel{
		{X: 0, Y: 0, Z: 5},   // inside the bounding box, not a fill voxel
		{X: 0, Y: 9, Z: 0},   // outside on y
		{X: -1, Y: 0, Z: 0},  // outside on x
		{X: 20, Y: 0, Z: 20}, // fully outside
	}
	for _, p := range misses {
		if vs.Contains(p) {
			t.Errorf("FindPoint falsely located %v", p)
		}
	}
}

func TestRelease(t *testing.T) {
	reg := registry.New()
	vs := New(reg, voxel.Voxel{}, []voxel.Voxel{{X: 1, Y: 1, Z: 1}})
	id := vs.ID()

	if _, ok := reg.Lookup(id); !ok {
		t.Fatal("set not registered on construction")
	}
	vs.Release()
	if _, ok := reg.Lookup(id); ok {
		t.Error("set still registered after Release")
	}
}
