// term.go — the term model: variables, abstractions, applications, bindings.
//
// OVERVIEW
// --------
// A Term is one of exactly three variants:
//
//	*Variable      an identity-bearing leaf
//	*Abstraction   a binder ("λx.") over a body term
//	*Application   a function term applied to an argument term
//
// The interface is sealed by an unexported marker method; every consumer
// (printer, binder, substitution, equivalence checker, reducer, numeral
// decoder) dispatches with an exhaustive type switch over the three variants.
//
// IDENTITY & BINDING
// ------------------
// Each Variable carries an id drawn from an IDSource at creation time. Two
// Variable nodes denote the same binding occurrence only after a binding
// pass fuses their ids. The pass runs when NewAbstraction builds a binder
// over a fully formed body: every free occurrence whose name matches the
// binder's variable is fused to the binder's id and marked bound. A nested
// abstraction over the same name shields its whole subtree from the pass.
// Reaching an occurrence of the matching name that is already bound is a
// binding conflict and is rejected with RebindingError; a live name cannot
// be reused, not even as shadowing.
//
// Terms are immutable once binding completes. Reduction and substitution
// always build new nodes (see reduce.go); the binding pass is the only code
// that writes to a Variable, and it runs exactly once per binder.
//
// An IDSource is an explicit dependency rather than package state so that
// independent sessions never share a counter; see Session in session.go.
package lambdacalc

import (
	"strings"
	"sync/atomic"
)

// Term is the closed sum of the three expression variants.
type Term interface {
	// String renders the term with the canonical printer (printer.go).
	String() string

	isTerm()
}

// IDSource hands out process-unique variable identities. The zero value is
// ready to use; Next may be called from multiple goroutines.
type IDSource struct {
	n atomic.Int64
}

// NewIDSource returns a fresh identity counter starting at 1.
func NewIDSource() *IDSource {
	return &IDSource{}
}

// Next returns the next identity.
func (s *IDSource) Next() int64 {
	return s.n.Add(1)
}

// Variable is an identity-bearing leaf. Name is the one-character source
// identifier. The id and bound flag are written only by the binding pass.
type Variable struct {
	Name string

	id    int64
	bound bool
}

// NewVariable creates a free variable with a fresh identity from ids.
func NewVariable(ids *IDSource, name string) *Variable {
	return &Variable{Name: name, id: ids.Next()}
}

// ID returns the variable's identity.
func (v *Variable) ID() int64 { return v.id }

// IsBound reports whether a binding pass has fused this occurrence to a
// binder.
func (v *Variable) IsBound() bool { return v.bound }

// Abstraction owns its bound-variable descriptor and a body term.
type Abstraction struct {
	Var  *Variable
	Body Term
}

// Application owns a function term and an argument term.
type Application struct {
	Fn  Term
	Arg Term
}

func (*Variable) isTerm()    {}
func (*Abstraction) isTerm() {}
func (*Application) isTerm() {}

// NewAbstraction builds a binder over body and runs the binding pass: every
// free occurrence of v.Name in body is fused to v's identity. It fails with
// RebindingError when the pass reaches an already-bound occurrence of the
// name outside the shield of a nested same-name abstraction.
func NewAbstraction(v *Variable, body Term) (*Abstraction, error) {
	if err := bindIn(body, v); err != nil {
		return nil, err
	}
	return &Abstraction{Var: v, Body: body}, nil
}

// rebuildAbstraction recreates a binder around an already-bound body during
// substitution. The identities inside body were fixed when the original term
// was constructed, so the binding pass must not run again.
func rebuildAbstraction(v *Variable, body Term) *Abstraction {
	return &Abstraction{Var: v, Body: body}
}

// bindIn is the binding pass: it fuses free occurrences of binder.Name in t
// to binder's identity. Descent stops at a nested abstraction over the same
// name, which keeps occurrences it already bound out of reach.
func bindIn(t Term, binder *Variable) error {
	switch n := t.(type) {
	case *Variable:
		if n.Name != binder.Name {
			return nil
		}
		if n.bound {
			return &RebindingError{Name: n.Name}
		}
		n.id = binder.id
		n.bound = true
		return nil
	case *Abstraction:
		if n.Var.Name == binder.Name {
			return nil
		}
		return bindIn(n.Body, binder)
	case *Application:
		if err := bindIn(n.Fn, binder); err != nil {
			return err
		}
		return bindIn(n.Arg, binder)
	}
	return nil
}

// IsFullyBound reports whether every variable occurrence in t has been fused
// to some binder. Only fully bound terms may be reduced or named by a
// definition.
func IsFullyBound(t Term) bool {
	switch n := t.(type) {
	case *Variable:
		return n.bound
	case *Abstraction:
		return IsFullyBound(n.Body)
	case *Application:
		return IsFullyBound(n.Fn) && IsFullyBound(n.Arg)
	}
	return false
}

// AlphaEq reports whether a and b are alpha-equivalent: identical in shape,
// with a consistent bijective correspondence between the binders met while
// walking both trees in lock step.
func AlphaEq(a, b Term) bool {
	return alphaEq(a, b, map[int64]int64{})
}

// alphaEq records each binder pair in renames keyed smaller-id to larger-id,
// so the check is symmetric in its arguments. A child map is copied per
// abstraction pair; an inner pair reusing an id overwrites the outer entry
// for exactly the scope of its body.
func alphaEq(a, b Term, renames map[int64]int64) bool {
	switch x := a.(type) {
	case *Variable:
		y, ok := b.(*Variable)
		if !ok {
			return false
		}
		lo, hi := orderIDs(x.id, y.id)
		got, ok := renames[lo]
		return ok && got == hi
	case *Abstraction:
		y, ok := b.(*Abstraction)
		if !ok {
			return false
		}
		lo, hi := orderIDs(x.Var.id, y.Var.id)
		child := make(map[int64]int64, len(renames)+1)
		for k, v := range renames {
			child[k] = v
		}
		child[lo] = hi
		return alphaEq(x.Body, y.Body, child)
	case *Application:
		y, ok := b.(*Application)
		if !ok {
			return false
		}
		return alphaEq(x.Fn, y.Fn, renames) && alphaEq(x.Arg, y.Arg, renames)
	}
	return false
}

func orderIDs(a, b int64) (lo, hi int64) {
	if a <= b {
		return a, b
	}
	return b, a
}

// Definition names a closed term. Name is canonical (upper-cased).
type Definition struct {
	Name string
	Term Term
}

// NewDefinition validates and builds a definition. Numeral names are
// reserved for Church numerals, and only fully bound terms may be named.
func NewDefinition(name string, t Term) (*Definition, error) {
	canonical := strings.ToUpper(name)
	if isNumeralName(canonical) {
		return nil, &ReservedNameError{Name: canonical}
	}
	if !IsFullyBound(t) {
		return nil, &UnclosedTermError{Name: canonical}
	}
	return &Definition{Name: canonical, Term: t}, nil
}

// isNumeralName reports whether name is one or more digits and nothing else.
func isNumeralName(name string) bool {
	if name == "" {
		return false
	}
	for _, ch := range name {
		if !isDigit(ch) {
			return false
		}
	}
	return true
}
