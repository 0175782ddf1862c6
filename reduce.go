// reduce.go — beta reduction: single steps, the sequence iterator, and
// budgeted normalization.
//
// The strategy is leftmost-outermost (normal order). At an application the
// application itself is contracted first when its function is an
// abstraction; otherwise redexes in the function are exhausted before the
// argument. Reduction also proceeds under lambda, so terms reach full
// normal form when one exists. Normal order contracts the leftmost redex
// first, which finds a normal form whenever the term has one.
//
// Substitution is by variable identity, not by name: the binding pass fused
// every bound occurrence to its binder's id at construction time, so a
// replacement can never be captured by an unrelated binder that happens to
// share a name.
package lambdacalc

func copyVariable(v *Variable) *Variable {
	return &Variable{Name: v.Name, id: v.id, bound: v.bound}
}

// copyTerm returns a structurally fresh copy of t. Variable ids and bound
// flags are preserved, so the copy alpha-compares and decodes exactly like
// the original.
func copyTerm(t Term) Term {
	switch t := t.(type) {
	case *Variable:
		return copyVariable(t)
	case *Abstraction:
		return rebuildAbstraction(copyVariable(t.Var), copyTerm(t.Body))
	case *Application:
		return &Application{Fn: copyTerm(t.Fn), Arg: copyTerm(t.Arg)}
	}
	return t
}

// substitute replaces every variable carrying id in t with a fresh copy of
// repl. Ancestors are rebuilt rather than mutated, and abstractions are
// rebuilt without a binding pass: the replacement enters fully formed.
func substitute(t Term, id int64, repl Term) Term {
	switch t := t.(type) {
	case *Variable:
		if t.id == id {
			return copyTerm(repl)
		}
		return t
	case *Abstraction:
		return rebuildAbstraction(t.Var, substitute(t.Body, id, repl))
	case *Application:
		return &Application{
			Fn:  substitute(t.Fn, id, repl),
			Arg: substitute(t.Arg, id, repl),
		}
	}
	return t
}

// reduceOnce contracts the leftmost-outermost redex in t. It reports false
// when t is already in normal form.
func reduceOnce(t Term) (Term, bool) {
	switch t := t.(type) {
	case *Abstraction:
		if body, ok := reduceOnce(t.Body); ok {
			return rebuildAbstraction(t.Var, body), true
		}
	case *Application:
		if abs, ok := t.Fn.(*Abstraction); ok {
			return substitute(abs.Body, abs.Var.ID(), t.Arg), true
		}
		if fn, ok := reduceOnce(t.Fn); ok {
			return &Application{Fn: fn, Arg: t.Arg}, true
		}
		if arg, ok := reduceOnce(t.Arg); ok {
			return &Application{Fn: t.Fn, Arg: arg}, true
		}
	}
	return t, false
}

// IsNormalForm reports whether t contains no redex.
func IsNormalForm(t Term) bool {
	switch t := t.(type) {
	case *Abstraction:
		return IsNormalForm(t.Body)
	case *Application:
		if _, ok := t.Fn.(*Abstraction); ok {
			return false
		}
		return IsNormalForm(t.Fn) && IsNormalForm(t.Arg)
	}
	return true
}

// Reduction walks a term's reduction sequence one contraction at a time.
// Construct with NewReduction; the zero value is not usable.
//
// The caller owns termination. A term with no normal form, Ω being the
// classic case, keeps yielding steps forever, so interactive callers should
// impose a step budget (see Normalize).
type Reduction struct {
	cur   Term
	next  Term
	ready bool
	done  bool
	steps int
}

// NewReduction starts a reduction sequence at t. The input term is never
// mutated; every step builds a new tree.
func NewReduction(t Term) *Reduction {
	return &Reduction{cur: t}
}

// HasNext reports whether another reduction step exists. It computes the
// next term at most once per step, so alternating HasNext and Next walks
// each intermediate tree a single time.
func (r *Reduction) HasNext() bool {
	if r.done {
		return false
	}
	if !r.ready {
		next, ok := reduceOnce(r.cur)
		if !ok {
			r.done = true
			return false
		}
		r.next, r.ready = next, true
	}
	return true
}

// Next applies one contraction and returns the whole term after it. When no
// redex remains it returns the current term unchanged.
func (r *Reduction) Next() Term {
	if !r.HasNext() {
		return r.cur
	}
	r.cur, r.next, r.ready = r.next, nil, false
	r.steps++
	return r.cur
}

// Steps returns how many contractions have been applied so far.
func (r *Reduction) Steps() int { return r.steps }

// Current returns the term as of the most recent step.
func (r *Reduction) Current() Term { return r.cur }

// Normalize reduces t until no redex remains, giving up after maxSteps
// contractions. It returns the last term reached, the number of steps
// applied, and whether a normal form was reached.
func Normalize(t Term, maxSteps int) (Term, int, bool) {
	r := NewReduction(t)
	for r.HasNext() {
		if r.Steps() >= maxSteps {
			return r.Current(), r.Steps(), false
		}
		r.Next()
	}
	return r.Current(), r.Steps(), true
}
