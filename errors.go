// errors.go: the error taxonomy and caret-snippet rendering
//
// What this file does
// -------------------
// Every way an input can be rejected has its own error type, raised
// synchronously at the point of detection and never recovered internally:
//
//	MalformedInputError    lexer hit an unscannable character or an
//	                       unterminated shorthand reference
//	IncompleteParseError   parser exhausted its input without collapsing the
//	                       stack to a single term or definition
//	RebindingError         a binding pass reached a variable occurrence that
//	                       is already bound to another abstraction
//	NotFullyBoundError     a term submitted for reduction has free variables
//	UndefinedShorthandError  a shorthand reference has no entry in the table
//	ReservedNameError      a definition tried to reuse a numeral name
//	UnclosedTermError      a definition's term has free variables
//
// Front ends compose a rejection line from ErrorLabel(err) and err.Error(),
// and may append CaretSnippet(err, src) when the error carries a column.
// WrapErrorWithSource bundles all three into one error for non-interactive
// callers.
//
// Columns are 0-based rune offsets internally; rendered 1-based for humans.
package lambdacalc

import (
	"fmt"
	"strings"
)

// MalformedInputError reports an unscannable character or an unterminated
// shorthand reference. Col is the 0-based rune offset of the offending text.
type MalformedInputError struct {
	Col int
	Msg string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("%s (column %d)", e.Msg, e.Col+1)
}

// IncompleteParseError reports that the parser consumed all input without
// producing exactly one term or definition. Col points at the end of the
// region the parser was working on.
type IncompleteParseError struct {
	Col int
	Msg string
}

func (e *IncompleteParseError) Error() string {
	if e.Msg == "" {
		return "incomplete parse"
	}
	return e.Msg
}

// RebindingError reports a binding conflict: the binding pass for an
// abstraction reached an occurrence of Name that is already bound.
// Nested reuse of a live name is rejected rather than shadowed.
type RebindingError struct {
	Name string
}

func (e *RebindingError) Error() string {
	return fmt.Sprintf("'%s' is already bound", e.Name)
}

// NotFullyBoundError reports a term with free variables where a closed term
// is required.
type NotFullyBoundError struct{}

func (e *NotFullyBoundError) Error() string {
	return "input is not fully bound"
}

// UndefinedShorthandError reports a reference to a shorthand that is not in
// the definitions table. Name is canonical (upper-cased).
type UndefinedShorthandError struct {
	Name string
}

func (e *UndefinedShorthandError) Error() string {
	return fmt.Sprintf("undefined shorthand {%s}", e.Name)
}

// ReservedNameError reports an attempt to define a shorthand whose name is a
// pure numeral. Numerals always denote Church numerals and cannot be
// redefined.
type ReservedNameError struct {
	Name string
}

func (e *ReservedNameError) Error() string {
	return fmt.Sprintf("{%s} is a Church numeral and cannot be redefined", e.Name)
}

// UnclosedTermError reports a definition whose right-hand term still has
// free variables. Only closed terms may be named.
type UnclosedTermError struct {
	Name string
}

func (e *UnclosedTermError) Error() string {
	return fmt.Sprintf("{%s} must be defined by a fully bound term", e.Name)
}

// ErrorLabel returns the kind label front ends print before the description,
// or "Error" for anything outside the taxonomy.
func ErrorLabel(err error) string {
	switch err.(type) {
	case *MalformedInputError:
		return "MalformedInputError"
	case *IncompleteParseError:
		return "IncompleteParseError"
	case *RebindingError:
		return "RebindingError"
	case *NotFullyBoundError:
		return "NotFullyBoundError"
	case *UndefinedShorthandError:
		return "UndefinedShorthandError"
	case *ReservedNameError:
		return "ReservedNameError"
	case *UnclosedTermError:
		return "UnclosedTermError"
	default:
		return "Error"
	}
}

// CaretSnippet renders the source line with a caret under the error column,
// or "" when the error carries no position. Sources are single lines; the
// caret is aligned by rune so that multi-byte characters such as 'λ' do not
// skew it.
func CaretSnippet(err error, src string) string {
	col := -1
	switch e := err.(type) {
	case *MalformedInputError:
		col = e.Col
	case *IncompleteParseError:
		col = e.Col
	}
	if col < 0 {
		return ""
	}
	runes := []rune(src)
	if col > len(runes) {
		col = len(runes)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "  %s\n", src)
	fmt.Fprintf(&b, "  %s^", strings.Repeat(" ", col))
	return b.String()
}

// WrapErrorWithSource returns an error whose message carries the kind label,
// the description, and a caret snippet when the error has a position.
// Errors outside the taxonomy are returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	label := ErrorLabel(err)
	if label == "Error" {
		return err
	}
	snip := CaretSnippet(err, src)
	if snip == "" {
		return fmt.Errorf("%s: %s", label, err.Error())
	}
	return fmt.Errorf("%s: %s\n\n%s", label, err.Error(), snip)
}
