// parser.go — shift-reduce parser producing a Term or a Definition.
//
// OVERVIEW
// --------
// The parser is a bottom-up shift-reduce engine over an explicit stack of
// partially built symbols and one token of lookahead. It consumes the token
// stream from lexer.go and produces either a Term or, for assignment syntax
// at top level, a Definition.
//
// Grammar (terminals are the lexical classes from lexer.go):
//
//	term          := '(' term ')' | term term | 'λ' VAR '.' term | atom
//	atom          := VAR | shorthand-ref
//	shorthand-ref := NUMERAL | '{' NAME '}'
//	top-level     := term | shorthand-ref '=' term
//
// Each step attempts the reductions below in priority order and shifts the
// lookahead token only when none applies:
//
//  1. "( term )" collapses to the inner term as soon as the closing paren
//     is on top of the stack.
//  2. Two adjacent terms collapse to an Application, left term in function
//     position. Application is left-associative by construction and binds
//     tighter than a pending abstraction body.
//  3. "λ VAR . term" collapses to an Abstraction only when the lookahead is
//     end of input or a closing paren. The gate is what gives a lambda body
//     maximal extent: the body keeps absorbing terms through rule 2 until a
//     syntactic boundary forces the abstraction to close.
//  4. "shorthand = term" collapses to a Definition only at end of input, so
//     definitions cannot nest inside terms. Numeral names are reserved.
//  5. A bare shorthand not followed by '=' resolves eagerly: a numeral name
//     becomes the Church numeral term, anything else is looked up in the
//     definitions table.
//  6. Otherwise the lookahead is shifted. VAR tokens materialize as fresh
//     Variables here, which is why the parser needs an IDSource.
//
// Parsing accepts when exactly one symbol remains on the stack and it is a
// Term or a Definition; any other final shape is an IncompleteParseError.
//
// Binding happens as abstractions are built (rule 3), so binding conflicts
// surface during the parse, at the reduction that constructed the binder.
package lambdacalc

import (
	"fmt"
	"strconv"
)

// Parse scans and parses one line of source. Exactly one of the returned
// term and definition is non-nil on success. A nil ids or defs is replaced
// by a fresh instance, never by a shared default.
//
// Stored definition terms are spliced into the result by reference. That is
// safe because definitions are closed: a later binding pass can only touch
// free variables, and the splice has none.
func Parse(src string, ids *IDSource, defs *Definitions) (Term, *Definition, error) {
	toks, err := Tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	if ids == nil {
		ids = NewIDSource()
	}
	if defs == nil {
		defs = NewDefinitions()
	}
	p := &parser{toks: toks, ids: ids, defs: defs}
	return p.run()
}

// shorthandSym is a shorthand reference sitting on the parse stack before
// rule 4 or 5 consumes it.
type shorthandSym struct {
	name string
	col  int
}

type parser struct {
	toks  []Token
	pos   int
	ids   *IDSource
	defs  *Definitions
	stack []any
}

// la returns the lookahead token, or nil at end of input.
func (p *parser) la() *Token {
	if p.pos >= len(p.toks) || p.toks[p.pos].Type == EOF {
		return nil
	}
	return &p.toks[p.pos]
}

func (p *parser) push(sym any) { p.stack = append(p.stack, sym) }

func (p *parser) pop() any {
	sym := p.stack[len(p.stack)-1]
	p.stack = p.stack[:len(p.stack)-1]
	return sym
}

/* ---------- stack pattern matching ---------- */

type symPred func(any) bool

func isTermSym(s any) bool {
	_, ok := s.(Term)
	return ok
}

func isVariableSym(s any) bool {
	_, ok := s.(*Variable)
	return ok
}

func isShorthandSym(s any) bool {
	_, ok := s.(shorthandSym)
	return ok
}

func tok(tt TokenType) symPred {
	return func(s any) bool {
		t, ok := s.(Token)
		return ok && t.Type == tt
	}
}

// match reports whether the top of the stack matches preds in order, with
// the last predicate against the topmost symbol.
func (p *parser) match(preds ...symPred) bool {
	if len(p.stack) < len(preds) {
		return false
	}
	base := len(p.stack) - len(preds)
	for i, pred := range preds {
		if !pred(p.stack[base+i]) {
			return false
		}
	}
	return true
}

/* ---------- the engine ---------- */

func (p *parser) run() (Term, *Definition, error) {
	for {
		la := p.la()
		switch {
		case p.match(tok(LPAREN), isTermSym, tok(RPAREN)):
			// term -> ( term )
			p.pop()
			t := p.pop()
			p.pop()
			p.push(t)

		case p.match(isTermSym, isTermSym):
			// Application -> term term
			arg := p.pop().(Term)
			fn := p.pop().(Term)
			p.push(&Application{Fn: fn, Arg: arg})

		case p.match(tok(LAMBDA), isVariableSym, tok(DOT), isTermSym) &&
			(la == nil || la.Type == RPAREN):
			// Abstraction -> λ VAR . term, gated on a closing boundary
			body := p.pop().(Term)
			p.pop()
			v := p.pop().(*Variable)
			p.pop()
			abs, err := NewAbstraction(v, body)
			if err != nil {
				return nil, nil, err
			}
			p.push(abs)

		case p.match(isShorthandSym, tok(ASSIGN), isTermSym) && la == nil:
			// Definition -> shorthand = term, top level only
			t := p.pop().(Term)
			p.pop()
			s := p.pop().(shorthandSym)
			def, err := NewDefinition(s.name, t)
			if err != nil {
				return nil, nil, err
			}
			p.push(def)

		case p.match(isShorthandSym) && !(la != nil && la.Type == ASSIGN):
			// A bare shorthand resolves eagerly.
			s := p.pop().(shorthandSym)
			t, err := p.resolveShorthand(s)
			if err != nil {
				return nil, nil, err
			}
			p.push(t)

		default:
			if la == nil {
				return p.accept()
			}
			p.shift(*la)
		}
	}
}

func (p *parser) shift(t Token) {
	switch t.Type {
	case VAR:
		p.push(NewVariable(p.ids, t.Text))
	case SHORTHAND, NUMERAL:
		p.push(shorthandSym{name: t.Text, col: t.Col})
	default:
		p.push(t)
	}
	p.pos++
}

func (p *parser) resolveShorthand(s shorthandSym) (Term, error) {
	if isNumeralName(s.name) {
		n, err := strconv.Atoi(s.name)
		if err != nil || n > MaxNumeral {
			return nil, &MalformedInputError{
				Col: s.col,
				Msg: fmt.Sprintf("numeral %s is out of range (max %d)", s.name, MaxNumeral),
			}
		}
		return ChurchNumeral(p.ids, n), nil
	}
	if t, ok := p.defs.Lookup(s.name); ok {
		return t, nil
	}
	return nil, &UndefinedShorthandError{Name: s.name}
}

func (p *parser) accept() (Term, *Definition, error) {
	if len(p.stack) == 1 {
		switch result := p.stack[0].(type) {
		case *Definition:
			return nil, result, nil
		case Term:
			return result, nil, nil
		}
	}
	msg := ""
	if len(p.stack) == 0 {
		msg = "empty input"
	}
	return nil, nil, &IncompleteParseError{Col: p.endCol(), Msg: msg}
}

// endCol is the rune column just past the last token, where the caret for
// an incomplete parse points.
func (p *parser) endCol() int {
	if len(p.toks) == 0 {
		return 0
	}
	return p.toks[len(p.toks)-1].Col
}
