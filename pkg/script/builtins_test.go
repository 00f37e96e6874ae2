package script

import (
	"strings"
	"testing"

	"github.com/chazu/voxform/pkg/voxel"
)

// evalOK runs source and fails the test on any fatal or eval error.
func evalOK(t *testing.T, source string) *Result {
	t.Helper()
	eng := NewEngine()
	res, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) > 0 {
		t.Fatalf("eval errors: %v", evalErrs)
	}
	return res
}

// evalErr runs source and returns the first eval error, failing the
// test if evaluation succeeds.
func evalErr(t *testing.T, source string) EvalError {
	t.Helper()
	eng := NewEngine()
	_, evalErrs, err := eng.Evaluate(source)
	if err != nil {
		t.Fatalf("fatal error: %v", err)
	}
	if len(evalErrs) == 0 {
		t.Fatalf("expected eval error from %q", source)
	}
	return evalErrs[0]
}

func TestPreprocessSource(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "keyword becomes marker string",
			in:   "(extrude lyr v :mode :shell)",
			want: `(extrude lyr v "__kw_mode" "__kw_shell")`,
		},
		{
			name: "semicolon comment becomes slashes",
			in:   ";; a comment\n(+ 1 2)",
			want: "// a comment\n(+ 1 2)",
		},
		{
			name: "string contents untouched",
			in:   `(solve "a∪b") ; :notakeyword in comment stays text`,
			want: `(solve "a∪b") // :notakeyword in comment stays text`,
		},
		{
			name: "assignment operator preserved",
			in:   "(x := 5)",
			want: "(x := 5)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := preprocessSource(tt.in); got != tt.want {
				t.Errorf("preprocessSource(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLineBuiltin(t *testing.T) {
	res := evalOK(t, `(bind "a" (line (voxel 0 0 0) (voxel 4 0 0)))`)
	a, ok := res.Shapes["a"]
	if !ok {
		t.Fatal("shape a not bound")
	}
	if a.Count() != 5 {
		t.Errorf("line voxel count = %d, want 5", a.Count())
	}
	if !a.Contains(voxel.Voxel{X: 2, Y: 0, Z: 0}) {
		t.Error("line missing midpoint voxel")
	}
}

func TestLayerAndFill(t *testing.T) {
	res := evalOK(t, `
(bind "sq" (fill (layer (voxel 0 0 0) (voxel 4 0 0) (voxel 4 4 0) (voxel 0 4 0))))
`)
	sq := res.Shapes["sq"]
	if sq == nil {
		t.Fatal("shape sq not bound")
	}
	if sq.Count() != 25 {
		t.Errorf("filled square count = %d, want 25", sq.Count())
	}
	if !sq.Contains(voxel.Voxel{X: 2, Y: 2, Z: 0}) {
		t.Error("filled square missing interior voxel")
	}
}

func TestExtrudeBuiltin(t *testing.T) {
	res := evalOK(t, `
(bind "prism" (extrude (layer (voxel 0 0 0) (voxel 2 0 0) (voxel 2 2 0) (voxel 0 2 0))
                       (voxel 0 0 2)))
`)
	if got := res.Shapes["prism"].Count(); got != 27 {
		t.Errorf("solid prism count = %d, want 27", got)
	}

	res = evalOK(t, `
(bind "tube" (extrude (layer (voxel 0 0 0) (voxel 2 0 0) (voxel 2 2 0) (voxel 0 2 0))
                      (voxel 0 0 2) :mode :shell))
`)
	tube := res.Shapes["tube"]
	if tube.Count() != 26 {
		t.Errorf("shell count = %d, want 26", tube.Count())
	}
	if tube.Contains(voxel.Voxel{X: 1, Y: 1, Z: 1}) {
		t.Error("shell contains its hollow center")
	}
}

func TestLoftBuiltin(t *testing.T) {
	res := evalOK(t, `
(bind "loft" (loft (layer (voxel 0 0 0) (voxel 2 0 0) (voxel 2 2 0) (voxel 0 2 0))
                   (layer (voxel 0 0 4) (voxel 2 0 4) (voxel 2 2 4) (voxel 0 2 4))))
`)
	if got := res.Shapes["loft"].Count(); got != 45 {
		t.Errorf("lofted prism count = %d, want 45", got)
	}
}

func TestSdfBuiltins(t *testing.T) {
	res := evalOK(t, `
(bind "b" (box 3 3 3))
(bind "s" (sphere 3))
(bind "c" (cylinder 4 2))
`)
	if got := res.Shapes["b"].Count(); got != 64 {
		t.Errorf("box count = %d, want 64", got)
	}
	if got := res.Shapes["s"].Count(); got != 123 {
		t.Errorf("sphere count = %d, want 123", got)
	}
	if c := res.Shapes["c"]; !c.Contains(voxel.Voxel{X: 0, Y: 0, Z: 0}) {
		t.Error("cylinder missing its center")
	}
}

func TestSolveBuiltin(t *testing.T) {
	res := evalOK(t, `
(bind "a" (line (voxel 0 0 0) (voxel 4 0 0)))
(bind "b" (line (voxel 2 0 0) (voxel 6 0 0)))
(solve "a∩b")
`)
	if res.Solved == nil {
		t.Fatal("expected a solved shape")
	}
	if res.Solved.Count() != 3 {
		t.Errorf("a∩b count = %d, want 3", res.Solved.Count())
	}
	for x := 2; x <= 4; x++ {
		if !res.Solved.Contains(voxel.Voxel{X: x, Y: 0, Z: 0}) {
			t.Errorf("a∩b missing voxel at x=%d", x)
		}
	}
}

func TestSolveSurvivesLaterBind(t *testing.T) {
	res := evalOK(t, `
(bind "a" (line (voxel 0 0 0) (voxel 4 0 0)))
(bind "b" (line (voxel 2 0 0) (voxel 6 0 0)))
(solve "a∪b")
(bind "c" (line (voxel 0 0 0) (voxel 0 0 9)))
`)
	// Binding c resets the collection's cache; the solved shape was
	// detached and must still be intact.
	if res.Solved == nil || res.Solved.Count() != 7 {
		t.Fatalf("solved shape damaged by later bind: %v", res.Solved)
	}
}

func TestVoxelArity(t *testing.T) {
	e := evalErr(t, "(voxel 1 2)")
	if !strings.Contains(e.Message, "3 arguments") {
		t.Errorf("error = %q, want arity complaint", e.Message)
	}
}

func TestBindRejectsBadName(t *testing.T) {
	e := evalErr(t, `(bind "Bad-Name" (line (voxel 0 0 0) (voxel 1 0 0)))`)
	if !strings.Contains(e.Message, "lowercase") {
		t.Errorf("error = %q, want name constraint complaint", e.Message)
	}
}

func TestFillRequiresLayer(t *testing.T) {
	e := evalErr(t, `(fill (line (voxel 0 0 0) (voxel 1 0 0)))`)
	if !strings.Contains(e.Message, "layer") {
		t.Errorf("error = %q, want layer type complaint", e.Message)
	}
}

func TestSolveRejectsInvalidEquation(t *testing.T) {
	e := evalErr(t, `
(bind "a" (line (voxel 0 0 0) (voxel 1 0 0)))
(solve "a∪")
`)
	if e.Message == "" {
		t.Error("expected a descriptive equation error")
	}
}

func TestSolveUnboundName(t *testing.T) {
	e := evalErr(t, `
(bind "a" (line (voxel 0 0 0) (voxel 1 0 0)))
(solve "a∪zz")
`)
	if !strings.Contains(e.Message, "unbound") {
		t.Errorf("error = %q, want unbound name complaint", e.Message)
	}
}
