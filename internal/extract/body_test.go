package extract

import (
	"reflect"
	"strings"
	"testing"

	"github.com/jlmoran/juliamap/internal/model"
)

const twoFuncs = `function f(x)
  y = g(x)
  return y
end
function g(z)
  return z
end
`

func scanOne(t *testing.T, sc *Scanner, text, name string) *model.Routine {
	t.Helper()
	var target *model.Routine
	knownSet := make(map[string]struct{})
	for _, r := range Routines(text) {
		if r.Name == name {
			target = r
		}
		knownSet[r.Name] = struct{}{}
	}
	if target == nil {
		t.Fatalf("routine %q not found", name)
	}
	sc.ScanBody(text, target, knownSet)
	return target
}

func TestScanBodyCallsAndReturns(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	f := scanOne(t, sc, twoFuncs, "f")
	if !reflect.DeepEqual(f.Calls, []string{"g"}) {
		t.Errorf("f.Calls = %v, want [g]", f.Calls)
	}
	found := false
	for _, out := range f.Outputs {
		if out == "y" {
			found = true
		}
	}
	if !found {
		t.Errorf("f.Outputs = %v, want to contain y", f.Outputs)
	}

	g := scanOne(t, sc, twoFuncs, "g")
	if len(g.Calls) != 0 {
		t.Errorf("g.Calls = %v, want empty", g.Calls)
	}
	if !reflect.DeepEqual(g.Outputs, []string{"z"}) {
		t.Errorf("g.Outputs = %v, want [z]", g.Outputs)
	}
}

func TestScanBodySelfCallExcluded(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function fact(n)\n  return fact(n)\nend\n"
	r := scanOne(t, sc, text, "fact")
	if len(r.Calls) != 0 {
		t.Errorf("Calls = %v, want empty (self-call)", r.Calls)
	}
}

func TestScanBodyUnknownCallDropped(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function f(x)\n  y = sqrt(x)\nend\n"
	r := scanOne(t, sc, text, "f")
	if len(r.Calls) != 0 {
		t.Errorf("Calls = %v, want empty (sqrt is not a known routine)", r.Calls)
	}
}

func TestScanBodyRepeatedCallsPreserved(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function f(x)\n  g(x)\n  g(x)\nend\nfunction g(z)\nend\n"
	r := scanOne(t, sc, text, "f")
	if !reflect.DeepEqual(r.Calls, []string{"g", "g"}) {
		t.Errorf("Calls = %v, want [g g] (deduplication happens at projection)", r.Calls)
	}
}

func TestScanBodyGlobalWrites(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function bump(n)\n  gdata.counter = counter + 1\n  gdata.counter = 0\n  gdata.total = n\nend\n"
	r := scanOne(t, sc, text, "bump")
	if !reflect.DeepEqual(r.Globals, []string{"counter", "total"}) {
		t.Errorf("Globals = %v, want [counter total] (set, first-write order)", r.Globals)
	}
}

func TestScanBodyCustomGlobalNamespace(t *testing.T) {
	t.Parallel()
	sc := NewScanner("shared", true)

	text := "function f(x)\n  shared.mode = x\n  gdata.other = x\nend\n"
	r := scanOne(t, sc, text, "f")
	if !reflect.DeepEqual(r.Globals, []string{"mode"}) {
		t.Errorf("Globals = %v, want [mode]", r.Globals)
	}
}

func TestScanBodyParamAssignmentHeuristic(t *testing.T) {
	t.Parallel()

	// Reassigning a parameter counts its right-hand side as an output, even
	// when nothing is actually returned. Known false positive.
	text := "function f(x)\n  x = x.data\nend\n"

	on := scanOne(t, NewScanner("gdata", true), text, "f")
	if !reflect.DeepEqual(on.Outputs, []string{"x.data"}) {
		t.Errorf("Outputs = %v, want [x.data]", on.Outputs)
	}

	off := scanOne(t, NewScanner("gdata", false), text, "f")
	if len(off.Outputs) != 0 {
		t.Errorf("Outputs = %v, want empty with heuristic off", off.Outputs)
	}
}

func TestScanBodyBareReturnContributesNothing(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function f(x)\n  return\nend\n"
	r := scanOne(t, sc, text, "f")
	if len(r.Outputs) != 0 {
		t.Errorf("Outputs = %v, want empty", r.Outputs)
	}
}

// The variable pattern is intentionally broad: parameters and call targets
// show up as variables too. That noise is part of the contract.
func TestScanBodyVariableNoise(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	f := scanOne(t, sc, twoFuncs, "f")
	for _, want := range []string{"x", "y", "g"} {
		found := false
		for _, v := range f.Variables {
			if v == want {
				found = true
			}
		}
		if !found {
			t.Errorf("Variables = %v, want to contain %q", f.Variables, want)
		}
	}
	for _, v := range f.Variables {
		if v == "function" || v == "return" || v == "end" {
			t.Errorf("Variables contains keyword %q", v)
		}
	}
}

func TestScanBodyTypeAnnotationConsumed(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	text := "function f(x)\n  total::Float64 = 0\nend\n"
	r := scanOne(t, sc, text, "f")
	for _, v := range r.Variables {
		if v == "Float64" {
			t.Errorf("Variables = %v; annotation type should be consumed, not reported", r.Variables)
		}
	}
}

func TestBodyDelimitation(t *testing.T) {
	t.Parallel()

	body, ok := Body(twoFuncs, "f")
	if !ok {
		t.Fatal("expected body for f")
	}
	if !strings.Contains(body, "return y") {
		t.Errorf("body = %q, missing f's return", body)
	}
	if strings.Contains(body, "function g") {
		t.Errorf("body = %q, leaked into g", body)
	}

	if _, ok := Body(twoFuncs, "missing"); ok {
		t.Error("expected no body for undefined routine")
	}
}

// A routine name that prefixes another must not match the longer definition.
func TestBodyNameBoundary(t *testing.T) {
	t.Parallel()

	text := "function foo(a)\n  return a\nend\nfunction fo(b)\n  return b\nend\n"
	body, ok := Body(text, "fo")
	if !ok {
		t.Fatal("expected body for fo")
	}
	if !strings.Contains(body, "return b") {
		t.Errorf("body = %q, matched foo instead of fo", body)
	}
}

func TestBodyMissingTerminator(t *testing.T) {
	t.Parallel()

	body, ok := Body("function f(x)\n  return x\n", "f")
	if !ok {
		t.Fatal("expected body")
	}
	if !strings.Contains(body, "return x") {
		t.Errorf("body = %q, want rest of text", body)
	}
}

func TestScanBodyNoDefinitionIsHarmless(t *testing.T) {
	t.Parallel()
	sc := NewScanner("gdata", true)

	r := &model.Routine{Name: "ghost"}
	sc.ScanBody("x = 1\n", r, map[string]struct{}{"ghost": {}})
	if len(r.Outputs)+len(r.Variables)+len(r.Calls)+len(r.Globals) != 0 {
		t.Errorf("record modified despite missing definition: %+v", r)
	}
}
