package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/quill-lang/quill/ast"
)

// TestParseProgram exercises the full grammar over one realistic file.
func TestParseProgram(t *testing.T) {
	input := `// Queue sizing constants.
export const Int capacity = 64;
mutable Int count = 0;

func push(*Queue q, Int value) -> Bool;

export func drain(*Queue q) -> Int {
	mutable Int total = 0;
	defer release(q);

	outer: loop (i = 0; i < count; i += 1) {
		Int value = head(q);
		if (value == null) break :outer;

		total += match (value % 3) {
			0 => value,
			1, 2 => value * 2,
			else => unreachable,
		};
	}

	return total;
}

/* trailing block comment */
`

	file, err := Parse([]byte(input), "queue.ql")
	assert.NoError(t, err)
	assert.Equal(t, 4, len(file.Decls))

	constDecl, ok := file.Decls[0].(*ast.VarDecl)
	assert.True(t, ok)
	assert.True(t, constDecl.Export)
	assert.True(t, constDecl.Const)
	assert.Equal(t, "capacity", constDecl.Name)

	mutDecl, ok := file.Decls[1].(*ast.VarDecl)
	assert.True(t, ok)
	assert.True(t, mutDecl.Mutable)

	proto, ok := file.Decls[2].(*ast.FuncProto)
	assert.True(t, ok)
	assert.Equal(t, "push", proto.Name)
	assert.Equal(t, 2, len(proto.Params))

	fn, ok := file.Decls[3].(*ast.FuncDecl)
	assert.True(t, ok)
	assert.True(t, fn.Proto.Export)
	assert.Equal(t, "drain", fn.Proto.Name)

	// The body holds: total decl, defer, labeled loop, return.
	assert.Equal(t, 4, len(fn.Body.Stmts))

	_, ok = fn.Body.Stmts[1].(*ast.DeferStmt)
	assert.True(t, ok)

	loop, ok := fn.Body.Stmts[2].(*ast.CLoop)
	assert.True(t, ok)
	assert.Equal(t, "outer", loop.Label)
	assert.Equal(t, 3, len(loop.Body.Stmts))

	ifStmt, ok := loop.Body.Stmts[1].(*ast.IfStmt)
	assert.True(t, ok)
	then, ok := ifStmt.Then.(*ast.ExprStmt)
	assert.True(t, ok)
	brk, ok := then.X.(*ast.BreakStmt)
	assert.True(t, ok)
	assert.Equal(t, "outer", brk.Label)

	matchStmt, ok := loop.Body.Stmts[2].(*ast.ExprStmt)
	assert.True(t, ok)
	assign, ok := matchStmt.X.(*ast.BinaryExpr)
	assert.True(t, ok)
	assert.Equal(t, ast.BinaryOpAssignPlus, assign.Op)
	match, ok := assign.Y.(*ast.MatchExpr)
	assert.True(t, ok)
	assert.Equal(t, 3, len(match.Branches))
	assert.True(t, match.Branches[2].IsElse)
}
