package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/quill-lang/quill/ast"
)

func TestNodePositions(t *testing.T) {
	input := "x = 1;\nfunc f() -> Int {\n  return 0;\n}\n"
	file, err := Parse([]byte(input), "pos.ql")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(file.Decls))

	decl := file.Decls[0].(*ast.VarDecl)
	assert.Equal(t, 1, decl.Pos.Line)
	assert.Equal(t, 1, decl.Pos.Column)
	assert.Equal(t, "pos.ql", decl.Pos.Filename)

	fn := file.Decls[1].(*ast.FuncDecl)
	assert.Equal(t, 2, fn.Pos.Line)
	assert.Equal(t, 1, fn.Pos.Column)

	ret := fn.Body.Stmts[0].(*ast.ExprStmt)
	assert.Equal(t, 3, ret.Pos.Line)
	assert.Equal(t, 3, ret.Pos.Column)
}

func TestBinaryExprPositionIsLeftOperand(t *testing.T) {
	// A binary node carries the position of its first token, which is the
	// start of its left operand.
	input := "x = aa + b;"
	file, err := Parse([]byte(input), "pos.ql")
	assert.NoError(t, err)

	decl := file.Decls[0].(*ast.VarDecl)
	bin := decl.Value.(*ast.BinaryExpr)
	assert.Equal(t, bin.X.Position(), bin.Pos)
	assert.Equal(t, 5, bin.Pos.Column)
}

func TestPositionOffsets(t *testing.T) {
	input := "abc = 42;"
	source := []byte(input)
	tokens, err := NewLexer(source, "pos.ql").ScanAll()
	assert.NoError(t, err)

	assert.Equal(t, 0, tokens[0].Start)
	assert.Equal(t, 3, tokens[0].End)
	assert.Equal(t, 4, tokens[1].Start) // =
	assert.Equal(t, 6, tokens[2].Start) // 42
}

func TestInternerDeduplicates(t *testing.T) {
	interner := NewInterner(8)

	a := interner.InternBytes([]byte("counter"))
	b := interner.InternBytes([]byte("counter"))
	assert.Equal(t, a, b)
	assert.Equal(t, 1, interner.Size())

	interner.Intern("other")
	assert.Equal(t, 2, interner.Size())
}

func TestParserInternsIdentifiers(t *testing.T) {
	input := "total = total + total;"
	file, err := Parse([]byte(input), "pos.ql")
	assert.NoError(t, err)

	decl := file.Decls[0].(*ast.VarDecl)
	bin := decl.Value.(*ast.BinaryExpr)
	left := bin.X.(*ast.Ident)
	right := bin.Y.(*ast.Ident)
	assert.Equal(t, "total", left.Name)
	assert.Equal(t, left.Name, right.Name)
}
