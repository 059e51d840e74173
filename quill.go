// Package quill exposes the front-end as a library: lexing a source buffer
// into a token stream and parsing it into an arena-owned AST.
package quill

import (
	"context"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/telemetry"
)

// ParseBytes runs the front-end over an in-memory source buffer: the lexer
// runs to completion first, then the parser consumes the token stream. Both
// phases report timings to the telemetry collector in ctx, if any.
func ParseBytes(ctx context.Context, source []byte, filename string) (*ast.File, error) {
	collector := telemetry.FromContext(ctx)

	timer := collector.Start("frontend " + filename)
	defer timer.End()

	lexTimer := timer.Child("lex")
	tokens, err := parser.NewLexer(source, filename).ScanAll()
	lexTimer.End()
	if err != nil {
		return nil, err
	}

	parseTimer := timer.Child("parse")
	file, err := parser.NewParser(source, filename, tokens).ParseFile()
	parseTimer.End()
	if err != nil {
		return nil, err
	}

	return file, nil
}

// ParseString is ParseBytes over a string.
func ParseString(ctx context.Context, source, filename string) (*ast.File, error) {
	return ParseBytes(ctx, []byte(source), filename)
}
