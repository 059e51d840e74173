package parser

import "github.com/quill-lang/quill/ast"

// precEntry maps a binary operator token to its precedence level and AST
// operator kind. Higher precedence numbers are stickier.
type precEntry struct {
	kind TokenKind
	prec uint8
	op   ast.BinaryOp
}

// precedenceTable is the single source of truth for binary operator parsing.
// The climb helper consults it level by level; within one level operators
// fold left, except at the comparison level, which takes at most one
// operator. The compound assignments += and -= sit at the addition level;
// "lvalue on the left" is a later pass's concern, not the parser's.
var precedenceTable = [...]precEntry{
	{MULT, 60, ast.BinaryOpMult},
	{MOD, 60, ast.BinaryOpMod},
	{SLASH, 60, ast.BinaryOpDiv},

	{PLUS, 50, ast.BinaryOpAdd},
	{MINUS, 50, ast.BinaryOpSubtract},
	{PLUS_EQUALS, 50, ast.BinaryOpAssignPlus},
	{MINUS_EQUALS, 50, ast.BinaryOpAssignMinus},

	{LBITSHIFT, 40, ast.BinaryOpBitshiftLeft},
	{RBITSHIFT, 40, ast.BinaryOpBitshiftRight},

	{EQUALS_EQUALS, 30, ast.BinaryOpCmpEqual},
	{EXCLAMATION_EQUALS, 30, ast.BinaryOpCmpNotEqual},
	{GREATER_THAN, 30, ast.BinaryOpCmpGreaterThan},
	{LESS_THAN, 30, ast.BinaryOpCmpLessThan},
	{GREATER_THAN_OR_EQUAL_TO, 30, ast.BinaryOpCmpGreaterThanOrEqualTo},
	{LESS_THAN_OR_EQUAL_TO, 30, ast.BinaryOpCmpLessThanOrEqualTo},

	{AND, 20, ast.BinaryOpBoolAnd},

	{OR, 10, ast.BinaryOpBoolOr},
}

// binaryOpAt returns the AST operator for a token kind at the given
// precedence level.
func binaryOpAt(kind TokenKind, prec uint8) (ast.BinaryOp, bool) {
	for _, e := range precedenceTable {
		if e.kind == kind && e.prec == prec {
			return e.op, true
		}
	}
	return ast.BinaryOpInvalid, false
}

// assignOps are the assignment operators recognized at the top of the
// expression grammar (chained at most once per level).
var assignOps = map[TokenKind]ast.BinaryOp{
	EQUALS:           ast.BinaryOpAssign,
	MULT_EQUALS:      ast.BinaryOpAssignMult,
	SLASH_EQUALS:     ast.BinaryOpAssignDiv,
	MOD_EQUALS:       ast.BinaryOpAssignMod,
	LBITSHIFT_EQUALS: ast.BinaryOpAssignBitshiftLeft,
	RBITSHIFT_EQUALS: ast.BinaryOpAssignBitshiftRight,
	AND_EQUALS:       ast.BinaryOpAssignAnd,
	OR_EQUALS:        ast.BinaryOpAssignOr,
	XOR_EQUALS:       ast.BinaryOpAssignXor,
	TILDA_EQUALS:     ast.BinaryOpAssignTilda,
}

// prefixOps maps prefix operator tokens to their AST kind.
var prefixOps = map[TokenKind]ast.PrefixOp{
	EXCLAMATION: ast.PrefixOpNot,
	MINUS:       ast.PrefixOpNegate,
	TILDA:       ast.PrefixOpBitNot,
	AND:         ast.PrefixOpAddr,
}

// prefixTypeOps maps prefix type operator tokens to their AST kind.
// The slice operator [] is recognized separately as a two-token sequence.
var prefixTypeOps = map[TokenKind]ast.TypeOp{
	QUESTION: ast.TypeOpOptional,
	MULT:     ast.TypeOpPointer,
	AND:      ast.TypeOpRef,
}
