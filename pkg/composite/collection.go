// Package composite interprets set-algebra equations over named
// VoxelSets. A Collection binds variable names to shapes, compiles an
// equation through setlang, and evaluates the AST with bounding-box
// pruning and a per-pass memo cache keyed by operand identifiers.
package composite

import (
	"sort"

	"github.com/cespare/xxhash/v2"

	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/setlang"
	"github.com/chazu/voxform/pkg/shape"
	"github.com/chazu/voxform/pkg/voxel"
)

// Collection binds names to VoxelSets and evaluates a compiled set
// equation over them.
//
// Result sets handed out by Evaluate are owned by the Collection's
// virtual cache: they stay valid until the next Bind, Unbind,
// SetEquation, or Release call, all of which release every cached
// result. Callers that need a result to outlive the cache must copy
// its fill voxels into a set of their own.
type Collection struct {
	reg      registry.Registry
	bindings map[string]*shape.VoxelSet

	eq *setlang.Equation

	cache map[uint64]*shape.VoxelSet
	owned []*shape.VoxelSet

	universal *shape.VoxelSet
	null      *shape.VoxelSet
}

// New returns an empty Collection issuing result identifiers from reg.
func New(reg registry.Registry) *Collection {
	return &Collection{
		reg:      reg,
		bindings: make(map[string]*shape.VoxelSet),
		cache:    make(map[uint64]*shape.VoxelSet),
	}
}

// Bind associates name with set for subsequent evaluations, replacing
// any previous binding. The cache is reset; the Collection does not
// take ownership of set.
func (c *Collection) Bind(name string, set *shape.VoxelSet) {
	c.bindings[name] = set
	c.resetCache()
}

// Unbind removes the binding for name, if any, and resets the cache.
func (c *Collection) Unbind(name string) {
	delete(c.bindings, name)
	c.resetCache()
}

// Binding returns the set bound to name, if any.
func (c *Collection) Binding(name string) (*shape.VoxelSet, bool) {
	set, ok := c.bindings[name]
	return set, ok
}

// SetEquation validates and compiles source as the Collection's
// equation, resetting the cache. A rejected equation leaves the
// previous equation in place.
func (c *Collection) SetEquation(source string) error {
	eq, err := setlang.NewEquation(source)
	if err != nil {
		return err
	}
	c.eq = eq
	c.resetCache()
	return nil
}

// Equation returns the current compiled equation, or nil if none was
// set.
func (c *Collection) Equation() *setlang.Equation {
	return c.eq
}

// Evaluate interprets the current equation over the current bindings
// and returns the resulting VoxelSet. The result is cache-owned; see
// the Collection doc.
func (c *Collection) Evaluate() (*shape.VoxelSet, error) {
	if c.eq == nil {
		return nil, NoEquationError{}
	}
	return c.eval(c.eq.AST())
}

// Release drops every cache-owned result set. Bound sets are left
// untouched.
func (c *Collection) Release() {
	c.resetCache()
}

// resetCache releases all cache-owned sets, including the synthesized
// universal and null sets, which are rebuilt from the bindings current
// at the next evaluation.
func (c *Collection) resetCache() {
	for _, set := range c.owned {
		set.Release()
	}
	c.owned = c.owned[:0]
	c.cache = make(map[uint64]*shape.VoxelSet)
	c.universal = nil
	c.null = nil
}

// own wraps fill voxels in a fresh registered VoxelSet under cache
// ownership.
func (c *Collection) own(fill []voxel.Voxel) *shape.VoxelSet {
	set := shape.New(c.reg, voxel.Voxel{}, fill)
	c.owned = append(c.owned, set)
	return set
}

// universalSet returns the synthesized all-voxels set: the union of
// every bound set, deduplicated. It is built once per cache lifetime.
func (c *Collection) universalSet() *shape.VoxelSet {
	if c.universal != nil {
		return c.universal
	}
	names := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	seen := make(map[voxel.Voxel]struct{})
	var fill []voxel.Voxel
	for _, name := range names {
		for _, v := range c.bindings[name].FillVoxels() {
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			fill = append(fill, v)
		}
	}
	c.universal = c.own(fill)
	return c.universal
}

// nullSet returns the synthesized empty set, built once per cache
// lifetime.
func (c *Collection) nullSet() *shape.VoxelSet {
	if c.null == nil {
		c.null = c.own(nil)
	}
	return c.null
}

func (c *Collection) eval(n setlang.Node) (*shape.VoxelSet, error) {
	switch n := n.(type) {
	case setlang.Leaf:
		switch string(n) {
		case setlang.TokUniversal:
			return c.universalSet(), nil
		case setlang.TokNull:
			return c.nullSet(), nil
		}
		set, ok := c.bindings[string(n)]
		if !ok {
			return nil, UnboundNameError{Name: string(n)}
		}
		return set, nil
	case *setlang.BinOp:
		left, err := c.eval(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := c.eval(n.Right)
		if err != nil {
			return nil, err
		}
		return c.combine(n.Op, left, right)
	default:
		return nil, UnknownOperationError{Op: n.String()}
	}
}

func commutative(op string) bool {
	return op == setlang.TokUnion || op == setlang.TokIntersect
}

func cacheKey(idL registry.Identifier, op string, idR registry.Identifier) uint64 {
	return xxhash.Sum64String(string(idL) + op + string(idR))
}

// combine evaluates one binary operation, returning a cached result
// when the same operand pair was already combined this pass.
func (c *Collection) combine(op string, l, r *shape.VoxelSet) (*shape.VoxelSet, error) {
	switch op {
	case setlang.TokUnion, setlang.TokIntersect, setlang.TokSubtract, setlang.TokSymDiff:
	default:
		return nil, UnknownOperationError{Op: op}
	}

	key := cacheKey(l.ID(), op, r.ID())
	if cached, ok := c.cache[key]; ok {
		return cached, nil
	}
	if commutative(op) {
		if cached, ok := c.cache[cacheKey(r.ID(), op, l.ID())]; ok {
			return cached, nil
		}
	}

	var result *shape.VoxelSet
	if l == r {
		switch op {
		case setlang.TokUnion, setlang.TokIntersect:
			result = c.own(l.FillVoxels())
		default:
			result = c.own(nil)
		}
	} else {
		region := overlapRegion(l, r)
		matched, lOnly := partition(l, r, region)
		_, rOnly := partition(r, l, region)

		var fill []voxel.Voxel
		switch op {
		case setlang.TokIntersect:
			fill = matched
		case setlang.TokUnion:
			fill = append(append(lOnly, rOnly...), matched...)
		case setlang.TokSubtract:
			fill = lOnly
		case setlang.TokSymDiff:
			fill = append(lOnly, rOnly...)
		}
		result = c.own(fill)
	}

	c.cache[key] = result
	return result, nil
}

// overlapRegion intersects every joint-box slice of a against every
// slice of b and collects the successful intersections into one joint
// region. Voxels outside it cannot be common to both sets.
func overlapRegion(a, b *shape.VoxelSet) *voxel.JointBoundingBox {
	ja, jb := a.Joint(), b.Joint()
	var boxes []*voxel.BoundingBox
	for i := 0; i < ja.Len(); i++ {
		for j := 0; j < jb.Len(); j++ {
			if box, _, ok := voxel.Intersect(ja.Box(i), jb.Box(j)); ok {
				boxes = append(boxes, box)
			}
		}
	}
	return voxel.NewJointBoundingBox(boxes)
}

// partition splits a's voxels into those present in b (necessarily
// inside the overlap region, checked first to prune the exact lookup)
// and the rest.
func partition(a, b *shape.VoxelSet, region *voxel.JointBoundingBox) (matched, only []voxel.Voxel) {
	for _, v := range a.FillVoxels() {
		if region.Contains(v) && b.Contains(v) {
			matched = append(matched, v)
		} else {
			only = append(only, v)
		}
	}
	return matched, only
}
