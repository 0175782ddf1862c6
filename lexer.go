// lexer.go
package lambdacalc

import (
	"fmt"
	"strings"
	"unicode"
)

// TokenType represents the kind of token.
type TokenType int

const (
	// Special
	EOF TokenType = iota

	// Control symbols
	LPAREN // "("
	RPAREN // ")"
	LAMBDA // "λ"
	DOT    // "."
	ASSIGN // "="

	// Payload-carrying classes
	SHORTHAND // "{name}", payload upper-cased
	NUMERAL   // digit run, payload is the digit string
	VAR       // any other single character
)

// Token is a lexical token. Text holds the payload: the canonical shorthand
// name, the numeral digits, or the variable's one-character name. Col and End
// are 0-based rune offsets delimiting the token in the source.
type Token struct {
	Type TokenType
	Text string
	Col  int
	End  int
}

// Lexer scans one line of lambda calculus source into tokens. Each lexical
// class starts with a distinct sigil, so a single rune of lookahead decides
// the class. Whitespace between tokens is skipped. The only inputs that do
// not scan are a '}' with no opening brace, an unterminated or empty "{...}"
// reference, and nothing else: every other rune is a control symbol, a digit,
// or a variable.
type Lexer struct {
	src    []rune
	cur    int
	tokens []Token
}

// NewLexer creates a lexer for the given source.
func NewLexer(src string) *Lexer {
	return &Lexer{src: []rune(src)}
}

// Tokenize scans src in one call.
func Tokenize(src string) ([]Token, error) {
	return NewLexer(src).Scan()
}

func (l *Lexer) isAtEnd() bool { return l.cur >= len(l.src) }

func (l *Lexer) peek() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	return l.src[l.cur], true
}

func (l *Lexer) advance() (rune, bool) {
	if l.isAtEnd() {
		return 0, false
	}
	ch := l.src[l.cur]
	l.cur++
	return ch, true
}

func (l *Lexer) addToken(tt TokenType, text string, start int) Token {
	tok := Token{Type: tt, Text: text, Col: start, End: l.cur}
	l.tokens = append(l.tokens, tok)
	return tok
}

func (l *Lexer) skipWhitespace() {
	for {
		ch, ok := l.peek()
		if !ok || !unicode.IsSpace(ch) {
			return
		}
		l.advance()
	}
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

// scanShorthand consumes the text between '{' and '}' after the opening
// brace has been read. start is the column of the '{'.
func (l *Lexer) scanShorthand(start int) (Token, error) {
	var name strings.Builder
	for {
		ch, ok := l.advance()
		if !ok {
			return Token{}, &MalformedInputError{Col: start, Msg: "unterminated shorthand reference"}
		}
		if ch == '}' {
			break
		}
		name.WriteRune(ch)
	}
	if name.Len() == 0 {
		return Token{}, &MalformedInputError{Col: start, Msg: "empty shorthand reference"}
	}
	// Shorthand names are case-insensitive; the canonical form is upper case.
	return l.addToken(SHORTHAND, strings.ToUpper(name.String()), start), nil
}

// scanNumeral consumes a digit run. The first digit has been read already.
func (l *Lexer) scanNumeral(start int, first rune) Token {
	var digits strings.Builder
	digits.WriteRune(first)
	for {
		ch, ok := l.peek()
		if !ok || !isDigit(ch) {
			break
		}
		l.advance()
		digits.WriteRune(ch)
	}
	return l.addToken(NUMERAL, digits.String(), start)
}

func (l *Lexer) scanToken() (Token, error) {
	l.skipWhitespace()
	start := l.cur

	if l.isAtEnd() {
		return l.addToken(EOF, "", start), nil
	}

	ch, _ := l.advance()
	switch ch {
	case '(':
		return l.addToken(LPAREN, "(", start), nil
	case ')':
		return l.addToken(RPAREN, ")", start), nil
	case 'λ':
		return l.addToken(LAMBDA, "λ", start), nil
	case '.':
		return l.addToken(DOT, ".", start), nil
	case '=':
		return l.addToken(ASSIGN, "=", start), nil
	case '{':
		return l.scanShorthand(start)
	case '}':
		return Token{}, &MalformedInputError{Col: start, Msg: fmt.Sprintf("unexpected character %q", ch)}
	}

	if isDigit(ch) {
		return l.scanNumeral(start, ch), nil
	}

	// Everything else is a one-character variable name, Ω and α included.
	return l.addToken(VAR, string(ch), start), nil
}

// Scan tokenizes the entire source and returns tokens (EOF included).
func (l *Lexer) Scan() ([]Token, error) {
	for {
		tok, err := l.scanToken()
		if err != nil {
			return nil, err
		}
		if tok.Type == EOF {
			return l.tokens, nil
		}
	}
}
