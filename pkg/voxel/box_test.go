package voxel

import "testing"

func TestNewBoundingBoxEmptyInput(t *testing.T) {
	_, err := NewBoundingBox(nil)
	if err == nil {
		t.Fatal("expected error for zero points")
	}
	if _, ok := err.(EmptyInputError); !ok {
		t.Errorf("error = %T, want EmptyInputError", err)
	}
}

func TestNewBoundingBoxExtents(t *testing.T) {
	points := []Voxel{
		{3, -1, 7},
		{-2, 5, 0},
		{1, 1, 1},
		{4, 0, -6},
	}
	b, err := NewBoundingBox(points)
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}

	if got, want := b.Corner(0), (Voxel{-2, -1, -6}); got != want {
		t.Errorf("corner 0 = %v, want %v", got, want)
	}
	if got, want := b.Corner(7), (Voxel{4, 5, 7}); got != want {
		t.Errorf("corner 7 = %v, want %v", got, want)
	}

	// Every corner index is a bit pattern over low/high extents.
	for i := Corner(0); i < NumCorners; i++ {
		c := b.Corner(i)
		for _, a := range []Axis{AxisX, AxisY, AxisZ} {
			want := b.Low(a)
			if i.high(a) {
				want = b.High(a)
			}
			if c.Component(a) != want {
				t.Errorf("corner %d axis %s = %d, want %d", i, a, c.Component(a), want)
			}
		}
	}

	// Every input point is inside its own bounding box.
	for _, p := range points {
		if !b.Contains(p) {
			t.Errorf("box does not contain input point %v", p)
		}
	}
	if b.Contains(Voxel{5, 0, 0}) {
		t.Error("box should not contain (5,0,0)")
	}
}

func TestRangeOrder(t *testing.T) {
	tests := []struct {
		name   string
		points []Voxel
		want   [3]Axis
	}{
		{
			name:   "distinct ranges",
			points: []Voxel{{0, 0, 0}, {2, 9, 5}},
			want:   [3]Axis{AxisY, AxisZ, AxisX},
		},
		{
			name:   "all equal ties break x,y,z",
			points: []Voxel{{0, 0, 0}, {4, 4, 4}},
			want:   [3]Axis{AxisX, AxisY, AxisZ},
		},
		{
			name:   "y and z tie",
			points: []Voxel{{0, 0, 0}, {1, 6, 6}},
			want:   [3]Axis{AxisY, AxisZ, AxisX},
		},
		{
			name:   "single point",
			points: []Voxel{{3, 3, 3}},
			want:   [3]Axis{AxisX, AxisY, AxisZ},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBoundingBox(tt.points)
			if err != nil {
				t.Fatalf("NewBoundingBox: %v", err)
			}
			if got := b.RangeOrder(); got != tt.want {
				t.Errorf("RangeOrder() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntersectSelf(t *testing.T) {
	b, err := NewBoundingBox([]Voxel{{0, 0, 0}, {10, 4, 7}})
	if err != nil {
		t.Fatalf("NewBoundingBox: %v", err)
	}
	got, _, ok := Intersect(b, b)
	if !ok {
		t.Fatal("self-intersection failed")
	}
	if got.Corners() != b.Corners() {
		t.Errorf("self-intersection = %v, want %v", got.Corners(), b.Corners())
	}
}

func TestIntersectOverlap(t *testing.T) {
	a, _ := NewBoundingBox([]Voxel{{0, 0, 0}, {10, 10, 10}})
	b, _ := NewBoundingBox([]Voxel{{5, 5, 5}, {15, 15, 15}})

	got, _, ok := Intersect(a, b)
	if !ok {
		t.Fatal("intersection of overlapping boxes failed")
	}
	if lo, want := got.Corner(0), (Voxel{5, 5, 5}); lo != want {
		t.Errorf("corner 0 = %v, want %v", lo, want)
	}
	if hi, want := got.Corner(7), (Voxel{10, 10, 10}); hi != want {
		t.Errorf("corner 7 = %v, want %v", hi, want)
	}

	// Intersection is commutative.
	rev, _, ok := Intersect(b, a)
	if !ok {
		t.Fatal("reverse intersection failed")
	}
	if rev.Corners() != got.Corners() {
		t.Errorf("Intersect(b,a) = %v, want %v", rev.Corners(), got.Corners())
	}
}

func TestIntersectContained(t *testing.T) {
	outer, _ := NewBoundingBox([]Voxel{{-10, -10, -10}, {10, 10, 10}})
	inner, _ := NewBoundingBox([]Voxel{{-2, -1, 0}, {3, 4, 5}})

	got, _, ok := Intersect(outer, inner)
	if !ok {
		t.Fatal("intersection with contained box failed")
	}
	if got.Corners() != inner.Corners() {
		t.Errorf("intersection = %v, want inner box %v", got.Corners(), inner.Corners())
	}
}

func TestIntersectDisjoint(t *testing.T) {
	tests := []struct {
		name string
		b1   []Voxel
		b2   []Voxel
	}{
		{"disjoint on x", []Voxel{{0, 0, 0}, {1, 10, 10}}, []Voxel{{5, 0, 0}, {6, 10, 10}}},
		{"disjoint on y", []Voxel{{0, 0, 0}, {10, 2, 10}}, []Voxel{{0, 7, 0}, {10, 9, 10}}},
		{"disjoint on z", []Voxel{{0, 0, 0}, {10, 10, 1}}, []Voxel{{0, 0, 3}, {10, 10, 4}}},
		{"fully disjoint", []Voxel{{0, 0, 0}, {1, 1, 1}}, []Voxel{{9, 9, 9}, {12, 12, 12}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := NewBoundingBox(tt.b1)
			b, _ := NewBoundingBox(tt.b2)
			if _, _, ok := Intersect(a, b); ok {
				t.Error("expected intersection failure for disjoint boxes")
			}
		})
	}
}

func TestIntersectTouching(t *testing.T) {
	// Boxes sharing a single corner point intersect in a zero-volume box.
	a, _ := NewBoundingBox([]Voxel{{0, 0, 0}, {5, 5, 5}})
	b, _ := NewBoundingBox([]Voxel{{5, 5, 5}, {10, 10, 10}})

	got, _, ok := Intersect(a, b)
	if !ok {
		t.Fatal("touching boxes should intersect")
	}
	want := Voxel{5, 5, 5}
	if got.Corner(0) != want || got.Corner(7) != want {
		t.Errorf("intersection = [%v, %v], want point %v", got.Corner(0), got.Corner(7), want)
	}
}

func TestIntersectCross(t *testing.T) {
	// Two bars crossing like a plus sign; neither contains a corner of
	// the other, so the result is built entirely from clipped edges.
	a, _ := NewBoundingBox([]Voxel{{0, 4, 4}, {10, 6, 6}})
	b, _ := NewBoundingBox([]Voxel{{4, 0, 4}, {6, 10, 6}})

	got, _, ok := Intersect(a, b)
	if !ok {
		t.Fatal("crossing bars should intersect")
	}
	if lo, want := got.Corner(0), (Voxel{4, 4, 4}); lo != want {
		t.Errorf("corner 0 = %v, want %v", lo, want)
	}
	if hi, want := got.Corner(7), (Voxel{6, 6, 6}); hi != want {
		t.Errorf("corner 7 = %v, want %v", hi, want)
	}
}
