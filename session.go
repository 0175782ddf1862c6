// session.go — the shorthand table and the interpreter session.
//
// A Session owns everything mutable about one interpreter instance: the
// variable id source and the definitions table. There is deliberately no
// package-level default table. Two sessions never share state, so embedding
// callers can run them side by side without coordination.
package lambdacalc

import (
	"bufio"
	"fmt"
	"strings"
)

// Definitions is an ordered shorthand table. Names are stored uppercase.
// Iteration follows first-definition order; redefining a name replaces its
// term but keeps its original position.
type Definitions struct {
	names  []string
	byName map[string]Term
}

// NewDefinitions returns an empty table.
func NewDefinitions() *Definitions {
	return &Definitions{byName: make(map[string]Term)}
}

// Define enters def into the table, replacing any term already stored under
// the same name.
func (d *Definitions) Define(def *Definition) {
	if _, ok := d.byName[def.Name]; !ok {
		d.names = append(d.names, def.Name)
	}
	d.byName[def.Name] = def.Term
}

// Lookup returns the term stored under name. Names are matched as stored,
// uppercase.
func (d *Definitions) Lookup(name string) (Term, bool) {
	t, ok := d.byName[name]
	return t, ok
}

// Names returns the defined names in first-definition order. The slice is a
// copy; mutating it does not affect the table.
func (d *Definitions) Names() []string {
	return append([]string(nil), d.names...)
}

// Len returns the number of definitions in the table.
func (d *Definitions) Len() int { return len(d.names) }

// Session ties the id source and the definitions table together for one
// interpreter instance. A Session is single-threaded; the id source alone
// is atomic, so terms may be constructed concurrently against the same
// IDSource as long as the caller serializes table access.
type Session struct {
	IDs  *IDSource
	Defs *Definitions
}

// NewSession returns a session with an empty table. Use LoadPrelude for the
// standard definitions.
func NewSession() *Session {
	return &Session{IDs: NewIDSource(), Defs: NewDefinitions()}
}

// Parse parses one line of input against the session's table. Exactly one
// of the returned term and definition is non-nil on success. A returned
// definition has not been entered into the table; pass it to Define.
func (s *Session) Parse(src string) (Term, *Definition, error) {
	return Parse(src, s.IDs, s.Defs)
}

// Define enters def into the session's table.
func (s *Session) Define(def *Definition) {
	s.Defs.Define(def)
}

// LoadPrelude loads the standard definitions into the session.
func (s *Session) LoadPrelude() error {
	return s.LoadDefinitions(PreludeSource)
}

// LoadDefinitions parses src line by line and enters each definition in
// order, so later lines may reference earlier names. Blank lines and lines
// starting with '#' are skipped. A line holding a plain term rather than a
// definition is an error.
func (s *Session) LoadDefinitions(src string) error {
	sc := bufio.NewScanner(strings.NewReader(src))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		_, def, err := s.Parse(text)
		if err != nil {
			return fmt.Errorf("definitions line %d: %w", line, err)
		}
		if def == nil {
			return fmt.Errorf("definitions line %d: not a definition: %s", line, text)
		}
		s.Define(def)
	}
	return sc.Err()
}

// Recognize reports the shorthand representations of t against the
// session's table.
func (s *Session) Recognize(t Term) Recognition {
	return Recognize(t, s.Defs)
}
