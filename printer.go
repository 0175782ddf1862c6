// printer.go
package lambdacalc

import (
	"fmt"
	"strings"
)

/* ---------- canonical term printer ---------- */

// PrintTerm renders t in the canonical form the parser accepts back:
//
//   - a variable prints as its one-character name
//   - an abstraction prints as "λx.body" with the body unparenthesized
//     (an abstraction body extends as far right as possible)
//   - in an application, the function is parenthesized when it is an
//     abstraction, and the argument is parenthesized unless it is a variable
//
// For every fully bound term t, parsing PrintTerm(t) yields a term that is
// alpha-equivalent to t.
func PrintTerm(t Term) string {
	var b strings.Builder
	writeTerm(&b, t)
	return b.String()
}

func writeTerm(b *strings.Builder, t Term) {
	switch n := t.(type) {
	case *Variable:
		b.WriteString(n.Name)
	case *Abstraction:
		b.WriteString("λ")
		b.WriteString(n.Var.Name)
		b.WriteString(".")
		writeTerm(b, n.Body)
	case *Application:
		if _, ok := n.Fn.(*Abstraction); ok {
			b.WriteString("(")
			writeTerm(b, n.Fn)
			b.WriteString(")")
		} else {
			writeTerm(b, n.Fn)
		}
		if _, ok := n.Arg.(*Variable); ok {
			writeTerm(b, n.Arg)
		} else {
			b.WriteString("(")
			writeTerm(b, n.Arg)
			b.WriteString(")")
		}
	}
}

func (v *Variable) String() string    { return PrintTerm(v) }
func (a *Abstraction) String() string { return PrintTerm(a) }
func (a *Application) String() string { return PrintTerm(a) }

// String renders a definition the way it is written: "{NAME}=term".
func (d *Definition) String() string {
	return "{" + d.Name + "}=" + PrintTerm(d.Term)
}

/* ---------- structure dump ---------- */

// TreeString renders the node structure of t, one field per line, with
// "|-" and "`-" edges. Front ends show it next to the printed form so the
// binding ids are visible. The result ends with a newline.
func TreeString(t Term) string {
	var b strings.Builder
	writeTree(&b, t, "")
	return b.String()
}

func writeTree(b *strings.Builder, t Term, indent string) {
	switch n := t.(type) {
	case *Variable:
		b.WriteString("Variable\n")
		fmt.Fprintf(b, "%s|- name: %s\n", indent, n.Name)
		fmt.Fprintf(b, "%s|- id: %d\n", indent, n.id)
		fmt.Fprintf(b, "%s`- bound: %v\n", indent, n.bound)
	case *Abstraction:
		b.WriteString("Abstraction\n")
		fmt.Fprintf(b, "%s|- var: ", indent)
		writeTree(b, n.Var, indent+"|       ")
		fmt.Fprintf(b, "%s`- term: ", indent)
		writeTree(b, n.Body, indent+"         ")
	case *Application:
		b.WriteString("Application\n")
		fmt.Fprintf(b, "%s|- m: ", indent)
		writeTree(b, n.Fn, indent+"|     ")
		fmt.Fprintf(b, "%s`- n: ", indent)
		writeTree(b, n.Arg, indent+"      ")
	}
}
