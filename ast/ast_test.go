package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestBinaryOpString(t *testing.T) {
	tests := []struct {
		op   BinaryOp
		want string
	}{
		{BinaryOpMult, "*"},
		{BinaryOpAdd, "+"},
		{BinaryOpBitshiftLeft, "<<"},
		{BinaryOpCmpNotEqual, "!="},
		{BinaryOpBoolAnd, "&"},
		{BinaryOpBoolOr, "|"},
		{BinaryOpAssign, "="},
		{BinaryOpAssignBitshiftRight, ">>="},
		{BinaryOpInvalid, "INVALID"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.op.String())
	}
}

func TestBinaryOpIsAssignment(t *testing.T) {
	assert.True(t, BinaryOpAssign.IsAssignment())
	assert.True(t, BinaryOpAssignPlus.IsAssignment())
	assert.True(t, BinaryOpAssignTilda.IsAssignment())
	assert.False(t, BinaryOpAdd.IsAssignment())
	assert.False(t, BinaryOpCmpEqual.IsAssignment())
}

func TestPrefixOpString(t *testing.T) {
	assert.Equal(t, "!", PrefixOpNot.String())
	assert.Equal(t, "-", PrefixOpNegate.String())
	assert.Equal(t, "~", PrefixOpBitNot.String())
	assert.Equal(t, "&", PrefixOpAddr.String())
}

func TestTypeOpString(t *testing.T) {
	assert.Equal(t, "?", TypeOpOptional.String())
	assert.Equal(t, "*", TypeOpPointer.String())
	assert.Equal(t, "&", TypeOpRef.String())
	assert.Equal(t, "[]", TypeOpSlice.String())
}

func TestNodeInterfaces(t *testing.T) {
	// A block is both a statement and an expression; branch statements are
	// usable in expression position too.
	var _ Stmt = (*Block)(nil)
	var _ Expr = (*Block)(nil)
	var _ Expr = (*BreakStmt)(nil)
	var _ Expr = (*ReturnStmt)(nil)
	var _ Stmt = (*MatchExpr)(nil)
	var _ Expr = (*MatchExpr)(nil)
	var _ Stmt = (*VarDecl)(nil)
	var _ Decl = (*VarDecl)(nil)
	var _ Expr = (*FuncProto)(nil)
}
