// church.go — construction and decoding of Church numerals.
package lambdacalc

// MaxNumeral bounds the Church numerals the parser will materialize. A
// numeral n expands to a term with n applications, so an unbounded numeral
// token could exhaust memory on its own.
const MaxNumeral = 1 << 20

// ChurchNumeral builds the Church encoding of n: λf.λx.f(f(...(f x))) with
// n applications of f. Every variable node is fresh, so construction cannot
// conflict with any existing binding and repeated calls share no structure.
func ChurchNumeral(ids *IDSource, n int) *Abstraction {
	var body Term = NewVariable(ids, "x")
	for i := 0; i < n; i++ {
		body = &Application{Fn: NewVariable(ids, "f"), Arg: body}
	}
	inner := mustAbstraction(NewVariable(ids, "x"), body)
	return mustAbstraction(NewVariable(ids, "f"), inner)
}

// mustAbstraction binds fresh variables, where a conflict is impossible.
func mustAbstraction(v *Variable, body Term) *Abstraction {
	abs, err := NewAbstraction(v, body)
	if err != nil {
		panic(err)
	}
	return abs
}

// DecodeChurchNumeral reports the n for which t is λf.λx.fⁿx. Matching is
// by bound-variable identity: every function-position variable must carry
// the outer binder's id and the spine must end on the inner binder's id.
// The second result is false when t has any other shape.
func DecodeChurchNumeral(t Term) (int, bool) {
	outer, ok := t.(*Abstraction)
	if !ok {
		return 0, false
	}
	inner, ok := outer.Body.(*Abstraction)
	if !ok {
		return 0, false
	}
	f, x := outer.Var, inner.Var
	n := 0
	cur := inner.Body
	for {
		app, ok := cur.(*Application)
		if !ok {
			break
		}
		fv, ok := app.Fn.(*Variable)
		if !ok || fv.ID() != f.ID() {
			return 0, false
		}
		n++
		cur = app.Arg
	}
	xv, ok := cur.(*Variable)
	if !ok || xv.ID() != x.ID() {
		return 0, false
	}
	return n, true
}
