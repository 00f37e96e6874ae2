package shape

import (
	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/voxel"
)

// Line is a VoxelSet whose fill voxels are the rasterized path between
// two origin-relative endpoints. Changing an endpoint regenerates the
// path.
type Line struct {
	*VoxelSet
	p1, p2 voxel.Voxel
}

// NewLine creates a line from p1 to p2 (origin-relative) and
// rasterizes it.
func NewLine(reg registry.Registry, origin, p1, p2 voxel.Voxel) *Line {
	l := &Line{
		VoxelSet: New(reg, origin, nil),
		p1:       p1,
		p2:       p2,
	}
	l.regenerate()
	return l
}

// Endpoints returns the origin-relative endpoints.
func (l *Line) Endpoints() (voxel.Voxel, voxel.Voxel) {
	return l.p1, l.p2
}

// SetEndpoints replaces both endpoints and regenerates the path.
func (l *Line) SetEndpoints(p1, p2 voxel.Voxel) {
	l.p1, l.p2 = p1, p2
	l.regenerate()
}

func (l *Line) regenerate() {
	l.SetFill(Graph3DParametric(l.p1, l.p2))
}
