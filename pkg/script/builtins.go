package script

import (
	"fmt"
	"regexp"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/voxform/pkg/composite"
	"github.com/chazu/voxform/pkg/extrude"
	"github.com/chazu/voxform/pkg/registry"
	"github.com/chazu/voxform/pkg/sdfvox"
	"github.com/chazu/voxform/pkg/shape"
	"github.com/chazu/voxform/pkg/voxel"
)

// session holds the state one evaluation builds up: its registry, the
// named shapes bound so far, and the composite collection solve runs
// against.
type session struct {
	reg    *registry.UUIDRegistry
	shapes map[string]*shape.VoxelSet
	col    *composite.Collection
	solved *shape.VoxelSet
}

func newSession() *session {
	reg := registry.New()
	return &session{
		reg:    reg,
		shapes: make(map[string]*shape.VoxelSet),
		col:    composite.New(reg),
	}
}

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source before zygomys sees it:
// :keyword tokens become "__kw_keyword" string literals (so keywords
// need no global symbol registration), and ; line comments become the
// // form zygomys expects. String literal contents pass through
// untouched.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			// Preserve the := assignment operator.
			out = append(out, b[i], b[i+1])
			i += 2
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, []byte(kwPrefix)...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types
// ---------------------------------------------------------------------------

// sexpVoxel wraps a voxel.Voxel so coordinates can be passed between
// builtins.
type sexpVoxel struct {
	v voxel.Voxel
}

func (s *sexpVoxel) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(voxel %d %d %d)", s.v.X, s.v.Y, s.v.Z)
}
func (s *sexpVoxel) Type() *zygo.RegisteredType { return nil }

// sexpShape wraps a built VoxelSet. layer is non-nil when the value
// still carries polygon structure that fill/extrude/loft can use.
type sexpShape struct {
	set   *shape.VoxelSet
	layer *shape.Layer
}

func (s *sexpShape) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(shape :voxels %d)", s.set.Count())
}
func (s *sexpShape) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Argument helpers
// ---------------------------------------------------------------------------

// kwArgs holds the result of parsing a mixed positional+keyword
// argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during
// preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		if str, ok := args[i].(*zygo.SexpStr); ok && strings.HasPrefix(str.S, kwPrefix) {
			name := str.S[len(kwPrefix):]
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
			continue
		}
		result.positional = append(result.positional, args[i])
		i++
	}
	return result
}

func toInt(s zygo.Sexp) (int, error) {
	if v, ok := s.(*zygo.SexpInt); ok {
		return int(v.Val), nil
	}
	return 0, fmt.Errorf("expected integer, got %T (%s)", s, s.SexpString(nil))
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp,
// handling both preprocessed keywords (__kw_shell) and plain strings
// ("shell").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, err := toString(s)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(str, kwPrefix), nil
}

func toVoxel(s zygo.Sexp) (voxel.Voxel, error) {
	if v, ok := s.(*sexpVoxel); ok {
		return v.v, nil
	}
	return voxel.Voxel{}, fmt.Errorf("expected voxel, got %T (%s)", s, s.SexpString(nil))
}

func toShape(s zygo.Sexp) (*sexpShape, error) {
	if v, ok := s.(*sexpShape); ok {
		return v, nil
	}
	return nil, fmt.Errorf("expected shape, got %T (%s)", s, s.SexpString(nil))
}

func toLayer(s zygo.Sexp) (*shape.Layer, error) {
	v, err := toShape(s)
	if err != nil {
		return nil, err
	}
	if v.layer == nil {
		return nil, fmt.Errorf("expected a layer shape, got a plain voxel set")
	}
	return v.layer, nil
}

// bindName constrains bound names to the equation language's variable
// charset.
var bindName = regexp.MustCompile(`^[a-z0-9]+$`)

// resolution reads the :resolution keyword, defaulting to one sample
// per model unit.
func resolution(pa kwArgs) (float64, error) {
	v, ok := pa.kw["resolution"]
	if !ok {
		return 1, nil
	}
	return toFloat64(v)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the shape-building builtins into a zygomys
// environment. They populate ses during evaluation.
//
// Source code must be preprocessed with preprocessSource() before
// evaluation so that :keyword tokens are recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, ses *session) {

	// -----------------------------------------------------------------------
	// (voxel 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("voxel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("voxel requires exactly 3 arguments, got %d", len(args))
		}
		var c [3]int
		for i, a := range args {
			n, err := toInt(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("voxel: %w", err)
			}
			c[i] = n
		}
		return &sexpVoxel{v: voxel.Voxel{X: c[0], Y: c[1], Z: c[2]}}, nil
	})

	// -----------------------------------------------------------------------
	// (line (voxel 0 0 0) (voxel 5 0 0))
	// -----------------------------------------------------------------------
	env.AddFunction("line", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("line requires exactly 2 voxel arguments, got %d", len(args))
		}
		p1, err := toVoxel(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		p2, err := toVoxel(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("line: %w", err)
		}
		l := shape.NewLine(ses.reg, voxel.Voxel{}, p1, p2)
		return &sexpShape{set: l.VoxelSet}, nil
	})

	// -----------------------------------------------------------------------
	// (layer (voxel 0 0 0) (voxel 4 0 0) (voxel 4 4 0) (voxel 0 4 0))
	// -----------------------------------------------------------------------
	env.AddFunction("layer", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		verts := make([]voxel.Voxel, len(args))
		for i, a := range args {
			v, err := toVoxel(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("layer: %w", err)
			}
			verts[i] = v
		}
		l, err := shape.NewLayer(ses.reg, voxel.Voxel{}, verts)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("layer: %w", err)
		}
		l.GenerateEdges()
		return &sexpShape{set: l.VoxelSet, layer: l}, nil
	})

	// -----------------------------------------------------------------------
	// (fill layer-shape)
	// -----------------------------------------------------------------------
	env.AddFunction("fill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("fill requires exactly 1 layer argument, got %d", len(args))
		}
		l, err := toLayer(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fill: %w", err)
		}
		l.FillPolygon()
		return args[0], nil
	})

	// -----------------------------------------------------------------------
	// (extrude layer-shape (voxel 0 0 3) :mode :shell)
	// -----------------------------------------------------------------------
	env.AddFunction("extrude", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("extrude requires a layer and a vector, got %d arguments", len(pa.positional))
		}
		l, err := toLayer(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		vec, err := toVoxel(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}

		mode := extrude.Solid
		if v, ok := pa.kw["mode"]; ok {
			m, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("extrude: mode: %w", err)
			}
			switch m {
			case "solid":
				mode = extrude.Solid
			case "shell":
				mode = extrude.Shell
			default:
				return zygo.SexpNull, fmt.Errorf("extrude: invalid mode %q, expected solid or shell", m)
			}
		}

		set, err := extrude.Vector(ses.reg, l, vec, mode)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("extrude: %w", err)
		}
		return &sexpShape{set: set}, nil
	})

	// -----------------------------------------------------------------------
	// (loft layer-1 layer-2 ...)
	// -----------------------------------------------------------------------
	env.AddFunction("loft", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		layers := make([]*shape.Layer, len(args))
		for i, a := range args {
			l, err := toLayer(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("loft: %w", err)
			}
			layers[i] = l
		}
		set, err := extrude.Convex(ses.reg, layers)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("loft: %w", err)
		}
		return &sexpShape{set: set}, nil
	})

	// -----------------------------------------------------------------------
	// (box 3 3 3 :resolution 1) / (sphere 3) / (cylinder 4 2)
	// -----------------------------------------------------------------------
	env.AddFunction("box", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 3 {
			return zygo.SexpNull, fmt.Errorf("box requires 3 dimensions, got %d", len(pa.positional))
		}
		var dims [3]float64
		for i, a := range pa.positional {
			f, err := toFloat64(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("box: %w", err)
			}
			dims[i] = f
		}
		res, err := resolution(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: resolution: %w", err)
		}
		set, err := sdfvox.Box(ses.reg, dims[0], dims[1], dims[2], res)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("box: %w", err)
		}
		return &sexpShape{set: set}, nil
	})

	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 1 {
			return zygo.SexpNull, fmt.Errorf("sphere requires a radius, got %d arguments", len(pa.positional))
		}
		radius, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		res, err := resolution(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: resolution: %w", err)
		}
		set, err := sdfvox.Sphere(ses.reg, radius, res)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: %w", err)
		}
		return &sexpShape{set: set}, nil
	})

	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) != 2 {
			return zygo.SexpNull, fmt.Errorf("cylinder requires height and radius, got %d arguments", len(pa.positional))
		}
		height, err := toFloat64(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: height: %w", err)
		}
		radius, err := toFloat64(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: radius: %w", err)
		}
		res, err := resolution(pa)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: resolution: %w", err)
		}
		set, err := sdfvox.Cylinder(ses.reg, height, radius, res)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpShape{set: set}, nil
	})

	// -----------------------------------------------------------------------
	// (bind "a" shape)
	// -----------------------------------------------------------------------
	env.AddFunction("bind", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("bind requires a name and a shape, got %d arguments", len(args))
		}
		bound, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bind: name: %w", err)
		}
		if !bindName.MatchString(bound) {
			return zygo.SexpNull, fmt.Errorf("bind: name %q must be lowercase letters and digits", bound)
		}
		val, err := toShape(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("bind: %w", err)
		}
		ses.shapes[bound] = val.set
		ses.col.Bind(bound, val.set)
		return args[1], nil
	})

	// -----------------------------------------------------------------------
	// (solve "a∪b-c")
	// -----------------------------------------------------------------------
	env.AddFunction("solve", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("solve requires an equation string, got %d arguments", len(args))
		}
		equation, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solve: %w", err)
		}
		if err := ses.col.SetEquation(equation); err != nil {
			return zygo.SexpNull, fmt.Errorf("solve: %w", err)
		}
		res, err := ses.col.Evaluate()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("solve: %w", err)
		}
		// Detach from the collection's cache so later binds cannot
		// release the result out from under the script.
		ses.solved = shape.New(ses.reg, voxel.Voxel{}, res.FillVoxels())
		return &sexpShape{set: ses.solved}, nil
	})
}
