// session_test.go
package lambdacalc

import (
	"reflect"
	"strings"
	"testing"
)

func preludeSession(t *testing.T) *Session {
	t.Helper()
	sess := NewSession()
	if err := sess.LoadPrelude(); err != nil {
		t.Fatalf("LoadPrelude error: %v", err)
	}
	return sess
}

// evalNormal parses src in sess and reduces it to normal form.
func evalNormal(t *testing.T, sess *Session, src string, budget int) Term {
	t.Helper()
	term, def, err := sess.Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	if def != nil {
		t.Fatalf("Parse(%q) produced a definition", src)
	}
	final, steps, done := Normalize(term, budget)
	if !done {
		t.Fatalf("%q: no normal form after %d steps", src, steps)
	}
	return final
}

func Test_Session_StartsEmpty(t *testing.T) {
	sess := NewSession()
	if sess.Defs.Len() != 0 {
		t.Fatalf("a new session must have no definitions")
	}
}

func Test_Session_PreludeLoads(t *testing.T) {
	sess := preludeSession(t)
	if sess.Defs.Len() != 18 {
		t.Fatalf("want 18 prelude definitions, got %d", sess.Defs.Len())
	}
	names := sess.Defs.Names()
	if names[0] != "SUCC" {
		t.Fatalf("prelude order lost, first name %q", names[0])
	}
	for _, want := range []string{"ADD", "TRUE", "FALSE", "ZERO?", "LTE?"} {
		if _, ok := sess.Defs.Lookup(want); !ok {
			t.Fatalf("prelude missing {%s}", want)
		}
	}
}

func Test_Session_NotTrueIsFalse(t *testing.T) {
	sess := preludeSession(t)
	final := evalNormal(t, sess, "{not}{true}", 100)

	rec := sess.Recognize(final)
	if !reflect.DeepEqual(rec.Names, []string{"FALSE"}) {
		t.Fatalf("want [FALSE], got %v", rec.Names)
	}
	// False doubles as Church zero.
	if !rec.IsNumeral || rec.Numeral != 0 {
		t.Fatalf("λx.λy.y should also decode as 0, got %+v", rec)
	}
}

func Test_Session_SuccTwoIsThree(t *testing.T) {
	sess := preludeSession(t)
	final := evalNormal(t, sess, "{succ}2", 100)

	n, ok := DecodeChurchNumeral(final)
	if !ok || n != 3 {
		t.Fatalf("want 3, got %d (ok=%v)", n, ok)
	}
}

func Test_Session_AddTwoThreeIsFive(t *testing.T) {
	sess := preludeSession(t)
	final := evalNormal(t, sess, "{add}2 3", 1000)

	n, ok := DecodeChurchNumeral(final)
	if !ok || n != 5 {
		t.Fatalf("want 5, got %d (ok=%v)", n, ok)
	}
}

func Test_Session_BooleanAlgebra(t *testing.T) {
	sess := preludeSession(t)
	cases := []struct {
		src, want string
	}{
		{"{and}{true}{false}", "FALSE"},
		{"{and}{true}{true}", "TRUE"},
		{"{or}{false}{true}", "TRUE"},
		{"{if}{true}(λa.a)(λb.bb)", ""},
	}
	for _, tc := range cases {
		final := evalNormal(t, sess, tc.src, 1000)
		if tc.want == "" {
			continue
		}
		names := MatchShorthands(final, sess.Defs)
		found := false
		for _, n := range names {
			if n == tc.want {
				found = true
			}
		}
		if !found {
			t.Fatalf("%s: want %s among %v", tc.src, tc.want, names)
		}
	}
}

func Test_Session_DefineAndUse(t *testing.T) {
	sess := NewSession()
	_, def, err := sess.Parse("{id}=λx.x")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if def == nil {
		t.Fatalf("want a definition")
	}
	sess.Define(def)

	final := evalNormal(t, sess, "{id}(λb.b)", 10)
	if got := PrintTerm(final); got != "λb.b" {
		t.Fatalf("want λb.b, got %s", got)
	}
	rec := sess.Recognize(final)
	if !reflect.DeepEqual(rec.Names, []string{"ID"}) {
		t.Fatalf("want [ID], got %v", rec.Names)
	}
}

func Test_Session_IndependentTables(t *testing.T) {
	s1 := NewSession()
	_, def, err := s1.Parse("{foo}=λx.x")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	s1.Define(def)

	s2 := NewSession()
	_, _, err = s2.Parse("{foo}")
	if err == nil {
		t.Fatalf("sessions must not share definitions")
	}
	if _, ok := err.(*UndefinedShorthandError); !ok {
		t.Fatalf("want UndefinedShorthandError, got %T", err)
	}
}

func Test_Session_RedefinitionReplacesTerm(t *testing.T) {
	sess := NewSession()
	for _, line := range []string{"{a}=λx.λy.x", "{b}=λx.x", "{a}=λx.λy.y"} {
		_, def, err := sess.Parse(line)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", line, err)
		}
		sess.Define(def)
	}

	if got := sess.Defs.Names(); !reflect.DeepEqual(got, []string{"A", "B"}) {
		t.Fatalf("redefinition must keep order, got %v", got)
	}
	stored, _ := sess.Defs.Lookup("A")
	if !AlphaEq(stored, parseTerm(t, "λx.λy.y")) {
		t.Fatalf("redefinition must replace the stored term")
	}
}

func Test_Session_LoadDefinitions_SkipsBlanksAndComments(t *testing.T) {
	src := "# booleans\n\n{true}=λx.λy.x\n  \n# negation\n{not}=λp.p(λx.λy.y){true}\n"
	sess := NewSession()
	if err := sess.LoadDefinitions(src); err != nil {
		t.Fatalf("LoadDefinitions error: %v", err)
	}
	if sess.Defs.Len() != 2 {
		t.Fatalf("want 2 definitions, got %d", sess.Defs.Len())
	}
}

func Test_Session_LoadDefinitions_RejectsPlainTerms(t *testing.T) {
	err := NewSession().LoadDefinitions("{true}=λx.λy.x\nλx.x\n")
	if err == nil {
		t.Fatalf("a plain term line must be rejected")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("error must carry the line number, got: %v", err)
	}
}

func Test_Session_LoadDefinitions_PropagatesParseErrors(t *testing.T) {
	err := NewSession().LoadDefinitions("{f}=λx.y\n")
	if err == nil {
		t.Fatalf("an open definition must be rejected")
	}
	if !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("error must carry the line number, got: %v", err)
	}
}
