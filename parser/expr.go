package parser

import (
	"github.com/shopspring/decimal"

	"github.com/quill-lang/quill/ast"
)

// binaryOpChain selects how the generic binary-expression helper folds
// operators at one precedence level.
type binaryOpChain uint8

const (
	// binaryOpChainOnce parses at most one operator at this level
	// (non-associative).
	binaryOpChainOnce binaryOpChain = iota
	// binaryOpChainInfinity folds operators of this level left-associatively
	// as long as they appear.
	binaryOpChainInfinity
)

// parseBinaryOpExpr is the single generic helper behind every binary
// expression level. opParser recognizes (and consumes) an operator of the
// level, returning a fresh operator node; childParser parses the operands.
// The operator node's children are patched exactly once before the node is
// handed upward.
func (p *Parser) parseBinaryOpExpr(
	chain binaryOpChain,
	opParser func() *ast.BinaryExpr,
	childParser func() (ast.Expr, error),
) (ast.Expr, error) {
	out, err := childParser()
	if err != nil || out == nil {
		return out, err
	}

	for {
		op := opParser()
		if op == nil {
			break
		}

		right, err := childParser()
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
		}

		op.X = out
		op.Y = right
		op.Pos = out.Position()
		out = op

		if chain == binaryOpChainOnce {
			break
		}
	}

	return out, nil
}

// binaryOpAtLevel builds an operator recognizer over the static precedence
// table for one level.
func (p *Parser) binaryOpAtLevel(prec uint8) func() *ast.BinaryExpr {
	return func() *ast.BinaryExpr {
		tok := p.peek()
		op, ok := binaryOpAt(tok.Kind, prec)
		if !ok {
			return nil
		}
		p.chomp()
		return ast.Alloc(p.arena, ast.BinaryExpr{
			Pos: p.tokenPosition(tok),
			Op:  op,
		})
	}
}

// parseAssignExpr parses: Expr (AssignOp Expr)?
//
// Assignment operators chain at most once.
func (p *Parser) parseAssignExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainOnce, p.assignOp, p.parseExpr)
}

func (p *Parser) assignOp() *ast.BinaryExpr {
	tok := p.peek()
	op, ok := assignOps[tok.Kind]
	if !ok {
		return nil
	}
	p.chomp()
	return ast.Alloc(p.arena, ast.BinaryExpr{
		Pos: p.tokenPosition(tok),
		Op:  op,
	})
}

// parseExpr parses a value expression, climbing the precedence levels from
// the loosest binding upward.
func (p *Parser) parseExpr() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	return p.parseBoolOrExpr()
}

func (p *Parser) parseBoolOrExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainInfinity, p.binaryOpAtLevel(10), p.parseBoolAndExpr)
}

func (p *Parser) parseBoolAndExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainInfinity, p.binaryOpAtLevel(20), p.parseComparisonExpr)
}

// Comparisons do not chain: a second comparison operator at the same level is
// left for the caller.
func (p *Parser) parseComparisonExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainOnce, p.binaryOpAtLevel(30), p.parseBitshiftExpr)
}

func (p *Parser) parseBitshiftExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainInfinity, p.binaryOpAtLevel(40), p.parseAdditionExpr)
}

func (p *Parser) parseAdditionExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainInfinity, p.binaryOpAtLevel(50), p.parseMultiplicationExpr)
}

func (p *Parser) parseMultiplicationExpr() (ast.Expr, error) {
	return p.parseBinaryOpExpr(binaryOpChainInfinity, p.binaryOpAtLevel(60), p.parsePrefixExpr)
}

// parsePrefixExpr parses: PrefixOp* SuffixExpr
func (p *Parser) parsePrefixExpr() (ast.Expr, error) {
	tok := p.peek()
	op, ok := prefixOps[tok.Kind]
	if !ok {
		return p.parseSuffixExpr()
	}
	p.chomp()

	x, err := p.parsePrefixExpr()
	if err != nil {
		return nil, err
	}
	if x == nil {
		return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
	}

	return ast.Alloc(p.arena, ast.PrefixExpr{
		Pos: p.tokenPosition(tok),
		Op:  op,
		X:   x,
	}), nil
}

// parseSuffixExpr parses a primary expression followed by any mix of
// slice/array-access suffixes and call-argument lists, associating left.
func (p *Parser) parseSuffixExpr() (ast.Expr, error) {
	out, err := p.parsePrimaryExpr()
	if err != nil || out == nil {
		return out, err
	}
	return p.parseSuffixOps(out)
}

// parseSuffixOps folds index, slice, and call suffixes onto out.
func (p *Parser) parseSuffixOps(out ast.Expr) (ast.Expr, error) {
	for {
		switch {
		case p.check(LSQUAREBRACK):
			p.chomp()

			var low ast.Expr
			var err error
			if !p.check(DDOT) {
				low, err = p.parseExpr()
				if err != nil {
					return nil, err
				}
				if low == nil {
					return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
				}
			}

			if _, ok := p.chompIf(DDOT); ok {
				var high ast.Expr
				if !p.check(RSQUAREBRACK) {
					high, err = p.parseExpr()
					if err != nil {
						return nil, err
					}
				}
				if _, err := p.expect(RSQUAREBRACK); err != nil {
					return nil, err
				}
				out = ast.Alloc(p.arena, ast.SliceExpr{
					Pos:  out.Position(),
					X:    out,
					Low:  low,
					High: high,
				})
				continue
			}

			if _, err := p.expect(RSQUAREBRACK); err != nil {
				return nil, err
			}
			out = ast.Alloc(p.arena, ast.IndexExpr{
				Pos:   out.Position(),
				X:     out,
				Index: low,
			})

		case p.check(LPAREN):
			p.chomp()
			args, err := parseList(p, p.parseCallArg)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(RPAREN); err != nil {
				return nil, err
			}
			out = ast.Alloc(p.arena, ast.CallExpr{
				Pos:  out.Position(),
				Fun:  out,
				Args: args,
			})

		default:
			return out, nil
		}
	}
}

func (p *Parser) parseCallArg() (ast.Expr, bool, error) {
	arg, err := p.parseExpr()
	if err != nil {
		return nil, false, err
	}
	return arg, arg != nil, nil
}

// parsePrimaryExpr parses the leaves of the expression grammar: literals,
// identifiers, branch expressions, if expressions, match expressions, blocks
// and init lists, function prototypes, and parenthesized expressions.
func (p *Parser) parsePrimaryExpr() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case INTEGER:
		return p.parseNumericLit(ast.IntLit)

	case FLOAT_LIT:
		return p.parseNumericLit(ast.FloatLit)

	case CHAR:
		p.chomp()
		return ast.Alloc(p.arena, ast.BasicLit{
			Pos:    p.tokenPosition(tok),
			Kind:   ast.CharLit,
			Lexeme: tok.String(p.source),
		}), nil

	case STRING:
		p.chomp()
		return ast.Alloc(p.arena, ast.BasicLit{
			Pos:    p.tokenPosition(tok),
			Kind:   ast.StringLit,
			Lexeme: p.interner.InternBytes(tok.Bytes(p.source)),
		}), nil

	case TOK_TRUE, TOK_FALSE:
		p.chomp()
		return ast.Alloc(p.arena, ast.BoolLit{
			Pos:   p.tokenPosition(tok),
			Value: tok.Kind == TOK_TRUE,
		}), nil

	case TOK_NULL:
		p.chomp()
		return ast.Alloc(p.arena, ast.NullLit{Pos: p.tokenPosition(tok)}), nil

	case UNREACHABLE:
		p.chomp()
		return ast.Alloc(p.arena, ast.Unreachable{Pos: p.tokenPosition(tok)}), nil

	case IDENTIFIER:
		p.chomp()
		return ast.Alloc(p.arena, ast.Ident{
			Pos:  p.tokenPosition(tok),
			Name: p.interner.InternBytes(tok.Bytes(p.source)),
		}), nil

	case BREAK:
		p.chomp()
		label, err := p.parseBreakLabel()
		if err != nil {
			return nil, err
		}
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.BreakStmt{
			Pos:   p.tokenPosition(tok),
			Label: label,
			Value: value,
		}), nil

	case CONTINUE:
		p.chomp()
		label, err := p.parseBreakLabel()
		if err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.ContinueStmt{
			Pos:   p.tokenPosition(tok),
			Label: label,
		}), nil

	case RETURN:
		p.chomp()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.ReturnStmt{
			Pos:   p.tokenPosition(tok),
			Value: value,
		}), nil

	case IF:
		return p.parseIfExpr()

	case MATCH:
		match, err := p.parseMatchExpr()
		if err != nil || match == nil {
			return nil, err
		}
		return match, nil

	case LBRACE:
		return p.parseInitListOrBlock()

	case FUNC:
		proto, err := p.parseFuncProto()
		if err != nil || proto == nil {
			return nil, err
		}
		return proto, nil

	case LPAREN:
		p.chomp()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, nil
	}
}

// parseNumericLit decodes an INTEGER or FLOAT token into a BasicLit carrying
// the exact decimal value.
func (p *Parser) parseNumericLit(kind ast.LitKind) (ast.Expr, error) {
	tok := p.chomp()
	lexeme := tok.String(p.source)

	value, err := decimal.NewFromString(lexeme)
	if err != nil {
		return nil, p.errorAtToken(tok, "invalid numeric literal `%s`", lexeme)
	}

	return ast.Alloc(p.arena, ast.BasicLit{
		Pos:    p.tokenPosition(tok),
		Kind:   kind,
		Lexeme: lexeme,
		Value:  value,
	}), nil
}

// parseBreakLabel parses the optional `: IDENT` after break or continue.
func (p *Parser) parseBreakLabel() (string, error) {
	if _, ok := p.chompIf(COLON); !ok {
		return "", nil
	}
	tok, err := p.expect(IDENTIFIER)
	if err != nil {
		return "", err
	}
	return p.interner.InternBytes(tok.Bytes(p.source)), nil
}

// parseIfExpr parses an if in expression position:
//
//	if ( Expr ) Expr (else Expr)?
func (p *Parser) parseIfExpr() (ast.Expr, error) {
	ifTok, ok := p.chompIf(IF)
	if !ok {
		return nil, nil
	}

	cond, err := p.parseIfCondition()
	if err != nil {
		return nil, err
	}

	then, err := p.parseIfBranch()
	if err != nil {
		return nil, err
	}

	expr := ast.Alloc(p.arena, ast.IfExpr{
		Pos:  p.tokenPosition(ifTok),
		Cond: cond,
		Then: then,
	})

	if _, ok := p.chompIf(ELSE); ok {
		elseExpr, err := p.parseIfBranch()
		if err != nil {
			return nil, err
		}
		expr.HasElse = true
		expr.Else = elseExpr
	}

	return expr, nil
}

// parseIfBranch parses one arm of an if expression: an assignment expression
// or a block.
func (p *Parser) parseIfBranch() (ast.Expr, error) {
	branch, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if branch != nil {
		return branch, nil
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if block != nil {
		return block, nil
	}

	return nil, p.errorHere("expected `if` body; found `%s`", p.describe(p.peek()))
}

// parseMatchExpr parses:
//
//	match LPAREN? Expr RPAREN? { MatchBranch (, MatchBranch)* ,? }
//
// The parentheses around the scrutinee are optional; the braces are not.
func (p *Parser) parseMatchExpr() (*ast.MatchExpr, error) {
	matchTok, ok := p.chompIf(MATCH)
	if !ok {
		return nil, nil
	}

	_, hasParen := p.chompIf(LPAREN)
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, p.errorHere("expected expression after `match`; found `%s`", p.describe(p.peek()))
	}
	if hasParen {
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(LBRACE); err != nil {
		return nil, err
	}

	branches, err := parseList(p, p.parseMatchBranch)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}

	return ast.Alloc(p.arena, ast.MatchExpr{
		Pos:      p.tokenPosition(matchTok),
		Cond:     cond,
		Branches: branches,
	}), nil
}

// parseMatchBranch parses: (else | MatchItem (, MatchItem)*) (: | =>) AssignmentExpr
func (p *Parser) parseMatchBranch() (*ast.MatchBranch, bool, error) {
	pos := p.tokenPosition(p.peek())

	branch := ast.Alloc(p.arena, ast.MatchBranch{Pos: pos})

	if _, ok := p.chompIf(ELSE); ok {
		branch.IsElse = true
	} else {
		first, err := p.parseExpr()
		if err != nil {
			return nil, false, err
		}
		if first == nil {
			return nil, false, nil
		}
		branch.Cases = append(branch.Cases, first)

		for {
			if _, ok := p.chompIf(COMMA); !ok {
				break
			}
			item, err := p.parseExpr()
			if err != nil {
				return nil, false, err
			}
			if item == nil {
				break
			}
			branch.Cases = append(branch.Cases, item)
		}
	}

	_, hasColon := p.chompIf(COLON)
	if !hasColon {
		if _, hasArrow := p.chompIf(EQUALS_ARROW); !hasArrow {
			return nil, false, p.errorHere("missing `:` or `=>` after match case")
		}
	}

	body, err := p.parseAssignExpr()
	if err != nil {
		return nil, false, err
	}
	if body == nil {
		return nil, false, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
	}
	branch.Body = body

	return branch, true, nil
}

// parseInitListOrBlock disambiguates `{` in expression position: an empty
// pair of braces or a leading expression followed by `,` or `}` is an init
// list; anything else rewinds and parses as a block.
func (p *Parser) parseInitListOrBlock() (ast.Expr, error) {
	mark := p.mark()

	lbrace, ok := p.chompIf(LBRACE)
	if !ok {
		return nil, nil
	}
	pos := p.tokenPosition(lbrace)

	if _, ok := p.chompIf(RBRACE); ok {
		return ast.Alloc(p.arena, ast.InitList{Pos: pos}), nil
	}

	first, err := p.parseExpr()
	if err != nil || first == nil || !(p.check(COMMA) || p.check(RBRACE)) {
		// Not an init list; reparse the braces as a block. A genuine error
		// inside a block surfaces from the block path with the same
		// position.
		p.restore(mark)
		block, err := p.parseBlock()
		if err != nil || block == nil {
			return nil, err
		}
		return block, nil
	}

	list := ast.Alloc(p.arena, ast.InitList{Pos: pos})
	list.Entries = append(list.Entries, first)

	for {
		if _, ok := p.chompIf(COMMA); !ok {
			break
		}
		entry, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if entry == nil {
			break
		}
		list.Entries = append(list.Entries, entry)
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}

	return list, nil
}

// Type expressions

// parseTypeExpr parses: PrefixTypeOp* SuffixExpr
//
// Prefix type operators are ? (optional), * (pointer), & (reference), and
// [] (slice).
func (p *Parser) parseTypeExpr() (ast.Expr, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	tok := p.peek()

	if op, ok := prefixTypeOps[tok.Kind]; ok {
		p.chomp()
		base, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, p.errorHere("expected type expression; found `%s`", p.describe(p.peek()))
		}
		return ast.Alloc(p.arena, ast.PrefixTypeExpr{
			Pos:  p.tokenPosition(tok),
			Op:   op,
			Base: base,
		}), nil
	}

	if tok.Kind == LSQUAREBRACK && p.peekAhead(1).Kind == RSQUAREBRACK {
		p.chomp()
		p.chomp()
		base, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if base == nil {
			return nil, p.errorHere("expected type expression; found `%s`", p.describe(p.peek()))
		}
		return ast.Alloc(p.arena, ast.PrefixTypeExpr{
			Pos:  p.tokenPosition(tok),
			Op:   ast.TypeOpSlice,
			Base: base,
		}), nil
	}

	return p.parseSuffixTypeExpr()
}

// parseSuffixTypeExpr parses a primary type expression with index, slice,
// and call suffixes.
func (p *Parser) parseSuffixTypeExpr() (ast.Expr, error) {
	out, err := p.parsePrimaryTypeExpr()
	if err != nil || out == nil {
		return out, err
	}
	return p.parseSuffixOps(out)
}

// parsePrimaryTypeExpr parses the leaves of the type grammar: a named type,
// a function prototype, or a parenthesized type expression.
func (p *Parser) parsePrimaryTypeExpr() (ast.Expr, error) {
	tok := p.peek()

	switch tok.Kind {
	case IDENTIFIER:
		p.chomp()
		return ast.Alloc(p.arena, ast.Ident{
			Pos:  p.tokenPosition(tok),
			Name: p.interner.InternBytes(tok.Bytes(p.source)),
		}), nil

	case FUNC:
		proto, err := p.parseFuncProto()
		if err != nil || proto == nil {
			return nil, err
		}
		return proto, nil

	case LPAREN:
		p.chomp()
		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		if inner == nil {
			return nil, p.errorHere("expected type expression; found `%s`", p.describe(p.peek()))
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, nil
	}
}
