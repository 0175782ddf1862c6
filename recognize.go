// recognize.go — matching reduced terms against known shorthand forms.
package lambdacalc

// Recognition lists the shorthand representations of a term: its value as a
// Church numeral, when it decodes as one, and every defined name whose
// stored term is alpha-equivalent.
type Recognition struct {
	Numeral   int
	IsNumeral bool
	Names     []string
}

// Any reports whether at least one representation was found.
func (r Recognition) Any() bool {
	return r.IsNumeral || len(r.Names) > 0
}

// Recognize matches t against the Church numeral shape and then against
// defs in definition order. A nil defs checks only the numeral shape.
func Recognize(t Term, defs *Definitions) Recognition {
	var rec Recognition
	rec.Numeral, rec.IsNumeral = DecodeChurchNumeral(t)
	if defs != nil {
		rec.Names = MatchShorthands(t, defs)
	}
	return rec
}

// MatchShorthands returns the names in defs whose stored terms are
// alpha-equivalent to t, in definition order.
func MatchShorthands(t Term, defs *Definitions) []string {
	var names []string
	for _, name := range defs.names {
		if AlphaEq(t, defs.byName[name]) {
			names = append(names, name)
		}
	}
	return names
}
