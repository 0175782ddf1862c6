// reduce_test.go
package lambdacalc

import (
	"reflect"
	"testing"
)

// reductionStrings runs t to normal form under budget and returns each
// intermediate printed form.
func reductionStrings(t *testing.T, term Term, budget int) []string {
	t.Helper()
	var out []string
	seq := NewReduction(term)
	for seq.HasNext() {
		if seq.Steps() >= budget {
			t.Fatalf("budget of %d steps exceeded; got so far: %v", budget, out)
		}
		out = append(out, PrintTerm(seq.Next()))
	}
	return out
}

func Test_Reduce_NormalFormYieldsNoSteps(t *testing.T) {
	for _, src := range []string{"x", "xy", "λx.x", "λf.λx.f(fx)", "x(λy.y)"} {
		term := parseTerm(t, src)
		if !IsNormalForm(term) {
			t.Fatalf("%s should be a normal form", src)
		}
		seq := NewReduction(term)
		if seq.HasNext() {
			t.Fatalf("%s: HasNext on a normal form", src)
		}
		if got := seq.Next(); got != term {
			t.Fatalf("%s: Next on a normal form must return the term unchanged", src)
		}
		if seq.Steps() != 0 {
			t.Fatalf("%s: want 0 steps, got %d", src, seq.Steps())
		}
	}
}

func Test_Reduce_IdentityOneStep(t *testing.T) {
	got := reductionStrings(t, parseTerm(t, "(λx.x)a"), 10)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("want [a], got %v", got)
	}
}

func Test_Reduce_MultiStepSequence(t *testing.T) {
	got := reductionStrings(t, parseTerm(t, "(λx.λy.xy)(λz.z)a"), 10)
	want := []string{"(λy.(λz.z)y)a", "(λz.z)a", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func Test_Reduce_UnderLambda(t *testing.T) {
	got := reductionStrings(t, parseTerm(t, "λx.(λy.y)x"), 10)
	if !reflect.DeepEqual(got, []string{"λx.x"}) {
		t.Fatalf("want [λx.x], got %v", got)
	}
}

func Test_Reduce_ArgumentAfterFunction(t *testing.T) {
	got := reductionStrings(t, parseTerm(t, "x((λy.y)z)"), 10)
	if !reflect.DeepEqual(got, []string{"xz"}) {
		t.Fatalf("want [xz], got %v", got)
	}
}

func Test_Reduce_ReachesNestedRedexes(t *testing.T) {
	// A redex inside an abstraction argument is still reachable.
	got := reductionStrings(t, parseTerm(t, "x(λy.(λz.z)w)"), 10)
	if !reflect.DeepEqual(got, []string{"x(λy.w)"}) {
		t.Fatalf("want [x(λy.w)], got %v", got)
	}
}

func Test_Reduce_LeftmostFirst(t *testing.T) {
	// Both sides hold a redex; the function side reduces first.
	got := reductionStrings(t, parseTerm(t, "((λx.x)a)((λy.y)b)"), 10)
	want := []string{"a((λy.y)b)", "ab"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("want %v, got %v", want, got)
	}
}

func Test_Reduce_OmegaRespectsBudget(t *testing.T) {
	omega := parseTerm(t, "(λx.xx)(λx.xx)")

	final, steps, done := Normalize(omega, 10)
	if done {
		t.Fatalf("Ω must not reach a normal form")
	}
	if steps != 10 {
		t.Fatalf("want 10 steps, got %d", steps)
	}
	if got := PrintTerm(final); got != "(λx.xx)(λx.xx)" {
		t.Fatalf("Ω must reduce to itself, got %s", got)
	}

	seq := NewReduction(omega)
	for i := 0; i < 5; i++ {
		seq.Next()
	}
	if !seq.HasNext() {
		t.Fatalf("Ω must always have a next step")
	}
}

func Test_Reduce_NormalizeReachesForm(t *testing.T) {
	final, steps, done := Normalize(parseTerm(t, "(λx.x)a"), 100)
	if !done || steps != 1 {
		t.Fatalf("want done after 1 step, got done=%v steps=%d", done, steps)
	}
	if got := PrintTerm(final); got != "a" {
		t.Fatalf("want a, got %s", got)
	}
}

func Test_Reduce_NormalizeZeroBudget(t *testing.T) {
	term := parseTerm(t, "(λx.x)a")
	final, steps, done := Normalize(term, 0)
	if done || steps != 0 || final != term {
		t.Fatalf("zero budget must return the input untouched")
	}
}

func Test_Reduce_SubstitutionCopiesPerInsertion(t *testing.T) {
	term := parseTerm(t, "(λx.xx)y").(*Application)
	arg := term.Arg.(*Variable)

	result, ok := reduceOnce(term)
	if !ok {
		t.Fatalf("expected a redex")
	}
	app, ok := result.(*Application)
	if !ok {
		t.Fatalf("want yy, got %T", result)
	}
	fn, fnOK := app.Fn.(*Variable)
	ar, arOK := app.Arg.(*Variable)
	if !fnOK || !arOK {
		t.Fatalf("want two variables, got %T and %T", app.Fn, app.Arg)
	}
	if fn == ar || fn == arg || ar == arg {
		t.Fatalf("each insertion must be a fresh copy")
	}
	if fn.ID() != arg.ID() || ar.ID() != arg.ID() {
		t.Fatalf("copies must preserve the variable id")
	}
	if fn.Name != "y" || ar.Name != "y" {
		t.Fatalf("copies must preserve the variable name")
	}
}

func Test_Reduce_InputTermUntouched(t *testing.T) {
	term := parseTerm(t, "(λx.x)a")
	before := PrintTerm(term)
	seq := NewReduction(term)
	for seq.HasNext() {
		seq.Next()
	}
	if after := PrintTerm(term); after != before {
		t.Fatalf("reduction mutated its input: %s became %s", before, after)
	}
}

func Test_Reduce_IteratorBookkeeping(t *testing.T) {
	term := parseTerm(t, "(λx.λy.xy)(λz.z)a")
	seq := NewReduction(term)
	if seq.Current() != term {
		t.Fatalf("Current must start at the input")
	}
	first := seq.Next()
	if seq.Steps() != 1 || seq.Current() != first {
		t.Fatalf("Steps/Current out of sync after one step")
	}
	for seq.HasNext() {
		seq.Next()
	}
	if seq.Steps() != 3 {
		t.Fatalf("want 3 total steps, got %d", seq.Steps())
	}
}
