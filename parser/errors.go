package parser

import (
	"fmt"

	"github.com/quill-lang/quill/ast"
)

// The front-end has exactly two error kinds, both positioned and both fatal
// to the current parse: no tokens or nodes are produced past the first one.
// Terminating the process is left to the embedder.

// LexError reports a byte the lexer could not classify, or an unterminated
// string or comment.
type LexError struct {
	Pos     ast.Position
	Message string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *LexError) GetPosition() ast.Position {
	return e.Pos
}

func newLexError(pos ast.Position, format string, args ...interface{}) *LexError {
	return &LexError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// ParseError reports a syntax error at a token.
type ParseError struct {
	Pos     ast.Position
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

func newParseError(pos ast.Position, format string, args ...interface{}) *ParseError {
	return &ParseError{Pos: pos, Message: fmt.Sprintf(format, args...)}
}
