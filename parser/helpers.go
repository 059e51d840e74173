package parser

import (
	"github.com/quill-lang/quill/ast"
)

// Token cursor primitives. These are the only legal ways a production moves
// through the token stream; no production looks at the raw buffer.

// peek returns the current token without advancing.
func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return Token{Kind: TOK_EOF}
	}
	return p.tokens[p.pos]
}

// peekAhead returns the token n positions ahead without advancing.
func (p *Parser) peekAhead(n int) Token {
	pos := p.pos + n
	if pos >= len(p.tokens) {
		return Token{Kind: TOK_EOF}
	}
	return p.tokens[pos]
}

// chomp returns the current token and advances by one.
func (p *Parser) chomp() Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

// chompIf consumes and returns the current token if it has the given kind.
// A non-matching current token leaves the cursor unchanged.
func (p *Parser) chompIf(kind TokenKind) (Token, bool) {
	if p.check(kind) {
		return p.chomp(), true
	}
	return Token{Kind: TOK_ILLEGAL}, false
}

// expect is chompIf that raises a positioned parse error on mismatch.
func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.check(kind) {
		return p.chomp(), nil
	}
	tok := p.peek()
	return Token{Kind: TOK_ILLEGAL}, p.errorAtToken(tok, "expected `%s`; found `%s`", kind, p.describe(tok))
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == TOK_EOF
}

// mark returns the current cursor position; restore rewinds to one.
// Productions that do not match restore the cursor before returning.
func (p *Parser) mark() int {
	return p.pos
}

func (p *Parser) restore(mark int) {
	p.pos = mark
}

// describe renders a token for diagnostics: the lexeme for literals and
// identifiers, the canonical spelling otherwise.
func (p *Parser) describe(tok Token) string {
	switch tok.Kind {
	case IDENTIFIER, INTEGER, FLOAT_LIT, CHAR, STRING:
		return tok.String(p.source)
	default:
		return tok.Kind.String()
	}
}

// tokenPosition extracts position information from a token.
func (p *Parser) tokenPosition(tok Token) ast.Position {
	return ast.Position{
		Filename: p.filename,
		Offset:   tok.Start,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

// Error helpers

func (p *Parser) errorAtToken(tok Token, format string, args ...interface{}) error {
	return newParseError(p.tokenPosition(tok), format, args...)
}

func (p *Parser) errorHere(format string, args ...interface{}) error {
	return p.errorAtToken(p.peek(), format, args...)
}

// Nesting guard. Recursive descent keeps stack depth proportional to
// syntactic nesting; past the bound the parser reports a positioned error
// instead of overflowing the goroutine stack.

const maxNestingDepth = 256

func (p *Parser) enter() error {
	p.depth++
	if p.depth > maxNestingDepth {
		return p.errorHere("nesting too deep")
	}
	return nil
}

func (p *Parser) leave() {
	p.depth--
}

// parseList parses Elem (COMMA Elem)* COMMA?. The element callback reports
// whether it matched; the list stops at the first non-match, which also
// admits one trailing comma before the closing delimiter.
func parseList[T any](p *Parser, elem func() (T, bool, error)) ([]T, error) {
	var out []T
	for {
		v, ok, err := elem()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		out = append(out, v)
		if _, ok := p.chompIf(COMMA); !ok {
			break
		}
	}
	return out, nil
}
