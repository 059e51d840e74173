// Package parser implements the Quill front-end: a zero-copy lexer producing
// a flat, positioned token stream, and a recursive-descent parser with
// table-driven precedence climbing producing an arena-owned AST.
//
// Data flows strictly left to right: the lexer runs to completion first and
// the parser consumes the materialized token vector; there is no feedback
// channel. Both halves stop at the first error and return it as a positioned
// value.
package parser

import (
	"github.com/quill-lang/quill/ast"
)

// Parser consumes a token stream and produces a tree of AST nodes.
type Parser struct {
	source   []byte
	filename string
	tokens   []Token
	pos      int
	arena    *ast.Arena
	interner *Interner
	depth    int
}

// NewParser creates a parser over an already-lexed token stream. The source
// buffer is the one the tokens point into.
func NewParser(source []byte, filename string, tokens []Token) *Parser {
	return &Parser{
		source:   source,
		filename: filename,
		tokens:   tokens,
		arena:    ast.NewArena(),
		interner: NewInterner(len(source)/40 + 64),
	}
}

// Parse lexes and parses a source buffer in one call.
func Parse(source []byte, filename string) (*ast.File, error) {
	tokens, err := NewLexer(source, filename).ScanAll()
	if err != nil {
		return nil, err
	}
	return NewParser(source, filename, tokens).ParseFile()
}

// Arena returns the arena owning every node of this parse. The tree rooted
// in the returned File is released by discarding the parser and arena
// together.
func (p *Parser) Arena() *ast.Arena {
	return p.arena
}

// ParseFile parses the whole token stream into a File root.
func (p *Parser) ParseFile() (*ast.File, error) {
	file := &ast.File{
		Pos:      p.tokenPosition(p.peek()),
		Filename: p.filename,
	}

	for !p.isAtEnd() {
		node, err := p.parseTopLevel()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return nil, p.errorHere("invalid token: `%s`", p.describe(p.peek()))
		}
		file.Decls = append(file.Decls, node)
	}

	return file, nil
}

// parseTopLevel parses one top-level declaration or statement.
func (p *Parser) parseTopLevel() (ast.Node, error) {
	fn, err := p.parseFuncDecl()
	if err != nil {
		return nil, err
	}
	if fn != nil {
		return fn, nil
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if stmt != nil {
		return stmt, nil
	}

	return nil, nil
}

// parseFuncDecl parses a function prototype optionally followed by a body:
//
//	export? func IDENT ( ParamList ) -> TypeExpr (Block | ;)
func (p *Parser) parseFuncDecl() (ast.Node, error) {
	mark := p.mark()

	exportTok, hasExport := p.chompIf(EXPORT)
	proto, err := p.parseFuncProto()
	if err != nil {
		return nil, err
	}
	if proto == nil {
		p.restore(mark)
		return nil, nil
	}
	if hasExport {
		proto.Export = true
		proto.Pos = p.tokenPosition(exportTok)
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if body != nil {
		return ast.Alloc(p.arena, ast.FuncDecl{
			Pos:   proto.Pos,
			Proto: proto,
			Body:  body,
		}), nil
	}

	// A bare prototype is terminated by a semicolon.
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return proto, nil
}

// parseFuncProto parses: func IDENT ( ParamList ) -> TypeExpr
//
// At most one parameter may be variadic, and it must be last.
func (p *Parser) parseFuncProto() (*ast.FuncProto, error) {
	funcTok, ok := p.chompIf(FUNC)
	if !ok {
		return nil, nil
	}

	nameTok, err := p.expect(IDENTIFIER)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	params, err := parseList(p, p.parseParamDecl)
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	if _, err := p.expect(RARROW); err != nil {
		return nil, err
	}

	returnType, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	if returnType == nil {
		return nil, p.errorHere("expected return type; found `%s`", p.describe(p.peek()))
	}

	proto := ast.Alloc(p.arena, ast.FuncProto{
		Pos:        p.tokenPosition(funcTok),
		Name:       p.interner.InternBytes(nameTok.Bytes(p.source)),
		Params:     params,
		ReturnType: returnType,
	})

	for i, param := range params {
		if !param.IsVarArgs {
			continue
		}
		proto.IsVarArgs = true
		if i != len(params)-1 {
			return nil, p.errorAtToken(p.tokenAtPos(param.Pos), "cannot have multiple variadic arguments in function prototype")
		}
	}

	return proto, nil
}

// tokenAtPos rebuilds a token view for a node position, for error reporting.
func (p *Parser) tokenAtPos(pos ast.Position) Token {
	return Token{Start: pos.Offset, End: pos.Offset, Line: pos.Line, Column: pos.Column}
}

// parseParamDecl parses one parameter: ...? TypeExpr IDENT?
func (p *Parser) parseParamDecl() (*ast.ParamDecl, bool, error) {
	pos := p.tokenPosition(p.peek())
	_, variadic := p.chompIf(ELLIPSIS)

	typ, err := p.parseTypeExpr()
	if err != nil {
		return nil, false, err
	}
	if typ == nil {
		if variadic {
			return nil, false, p.errorHere("expected type expression; found `%s`", p.describe(p.peek()))
		}
		return nil, false, nil
	}

	param := ast.Alloc(p.arena, ast.ParamDecl{
		Pos:       pos,
		Type:      typ,
		IsVarArgs: variadic,
	})
	if nameTok, ok := p.chompIf(IDENTIFIER); ok {
		param.Name = p.interner.InternBytes(nameTok.Bytes(p.source))
	}
	return param, true, nil
}

// parseVarDecl parses: export? (mutable | const)? TypeExpr? IDENT (= Expr)? ;
//
// An undecorated, untyped declaration commits only when the identifier is
// followed by `=`; everything else falls through to the expression-statement
// path so that `f();` and bare `x;` are not swallowed here.
func (p *Parser) parseVarDecl() (ast.Stmt, error) {
	mark := p.mark()
	startTok := p.peek()

	_, hasExport := p.chompIf(EXPORT)
	mutableTok, hasMutable := p.chompIf(MUTABLE)
	_, hasConst := p.chompIf(CONST)
	if hasMutable && hasConst {
		return nil, p.errorAtToken(mutableTok, "cannot decorate a variable as both `mutable` and `const`")
	}
	decorated := hasExport || hasMutable || hasConst

	// Optional type expression: committed only when an identifier follows,
	// otherwise whatever the speculative parse consumed is rewound.
	var typ ast.Expr
	var nameTok Token
	typeMark := p.mark()
	guess, err := p.parseTypeExpr()
	if err != nil && decorated {
		return nil, err
	}
	if err == nil && guess != nil && p.check(IDENTIFIER) {
		typ = guess
		nameTok = p.chomp()
	} else {
		p.restore(typeMark)
		tok, ok := p.chompIf(IDENTIFIER)
		if !ok {
			if decorated {
				return nil, p.errorHere("expected identifier; found `%s`", p.describe(p.peek()))
			}
			p.restore(mark)
			return nil, nil
		}
		nameTok = tok
	}

	var value ast.Expr
	if _, ok := p.chompIf(EQUALS); ok {
		value, err = p.parseExpr()
		if err != nil {
			return nil, err
		}
		if value == nil {
			return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
		}
	} else if !decorated && typ == nil {
		p.restore(mark)
		return nil, nil
	}

	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	return ast.Alloc(p.arena, ast.VarDecl{
		Pos:     p.tokenPosition(startTok),
		Name:    p.interner.InternBytes(nameTok.Bytes(p.source)),
		Export:  hasExport,
		Mutable: hasMutable,
		Const:   hasConst,
		Type:    typ,
		Value:   value,
	}), nil
}

// parseStatement parses one statement. Dispatch is by first-token lookahead;
// productions that do not match restore the cursor.
func (p *Parser) parseStatement() (ast.Stmt, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	varDecl, err := p.parseVarDecl()
	if err != nil {
		return nil, err
	}
	if varDecl != nil {
		return varDecl, nil
	}

	if deferTok, ok := p.chompIf(DEFER); ok {
		stmt, err := p.parseBlockExprStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			return nil, p.errorHere("expected statement after `defer`; found `%s`", p.describe(p.peek()))
		}
		return ast.Alloc(p.arena, ast.DeferStmt{
			Pos:  p.tokenPosition(deferTok),
			Stmt: stmt,
		}), nil
	}

	ifStmt, err := p.parseIfStatement()
	if err != nil {
		return nil, err
	}
	if ifStmt != nil {
		return ifStmt, nil
	}

	labeled, err := p.parseLabeledStatement()
	if err != nil {
		return nil, err
	}
	if labeled != nil {
		return labeled, nil
	}

	match, err := p.parseMatchExpr()
	if err != nil {
		return nil, err
	}
	if match != nil {
		return match, nil
	}

	expr, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if expr != nil {
		pos := expr.Position()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.ExprStmt{Pos: pos, X: expr}), nil
	}

	return nil, nil
}

// parseIfStatement parses: if ( Expr ) Body (else Stmt)?
//
// Body is a block or an assignment expression statement. A dangling else
// binds to the innermost unbound if.
func (p *Parser) parseIfStatement() (ast.Stmt, error) {
	ifTok, ok := p.chompIf(IF)
	if !ok {
		return nil, nil
	}

	cond, err := p.parseIfCondition()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlockExprStatement()
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, p.errorHere("expected `if` body; found `%s`", p.describe(p.peek()))
	}

	stmt := ast.Alloc(p.arena, ast.IfStmt{
		Pos:  p.tokenPosition(ifTok),
		Cond: cond,
		Then: body,
	})

	if _, ok := p.chompIf(ELSE); ok {
		elseStmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if elseStmt == nil {
			return nil, p.errorHere("expected statement after `else`; found `%s`", p.describe(p.peek()))
		}
		stmt.HasElse = true
		stmt.Else = elseStmt
	}

	return stmt, nil
}

// parseIfCondition parses the shared ( Expr ) prefix of if statements and if
// expressions.
func (p *Parser) parseIfCondition() (ast.Expr, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if cond == nil {
		return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}
	return cond, nil
}

// parseBlockExprStatement parses a block, or an assignment expression
// terminated by a semicolon.
func (p *Parser) parseBlockExprStatement() (ast.Stmt, error) {
	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if block != nil {
		return block, nil
	}

	expr, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if expr != nil {
		pos := expr.Position()
		if _, err := p.expect(SEMICOLON); err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.ExprStmt{Pos: pos, X: expr}), nil
	}

	return nil, nil
}

// parseLabeledStatement parses an `IDENT :` label attached to a block or a
// loop, or an unlabeled block or loop. A label that binds to neither is an
// error.
func (p *Parser) parseLabeledStatement() (ast.Stmt, error) {
	var label string
	hasLabel := false
	if p.check(IDENTIFIER) && p.peekAhead(1).Kind == COLON {
		labelTok := p.chomp()
		p.chomp() // colon
		label = p.interner.InternBytes(labelTok.Bytes(p.source))
		hasLabel = true
	}

	block, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if block != nil {
		block.Label = label
		return block, nil
	}

	loop, err := p.parseLoopStatement()
	if err != nil {
		return nil, err
	}
	if loop != nil {
		switch l := loop.(type) {
		case *ast.CLoop:
			l.Label = label
		case *ast.WhileLoop:
			l.Label = label
		case *ast.InLoop:
			l.Label = label
		}
		return loop, nil
	}

	if hasLabel {
		return nil, p.errorHere("invalid token: `%s`", p.describe(p.peek()))
	}
	return nil, nil
}

// parseLoopStatement parses: inline? loop LoopHeader? Block
//
// The three header forms are (init; cond; post), (cond), and (x in range);
// a headless loop is the infinite while form. `inline` without a following
// loop is an error.
func (p *Parser) parseLoopStatement() (ast.Stmt, error) {
	_, isInline := p.chompIf(INLINE)

	loopTok, ok := p.chompIf(LOOP)
	if !ok {
		if isInline {
			return nil, p.errorHere("invalid token: `%s`", p.describe(p.peek()))
		}
		return nil, nil
	}
	pos := p.tokenPosition(loopTok)

	if _, ok := p.chompIf(LPAREN); !ok {
		body, err := p.parseLoopBody()
		if err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.WhileLoop{
			Pos:    pos,
			Inline: isInline,
			Body:   body,
		}), nil
	}

	switch {
	case p.cStyleHeaderAhead():
		return p.parseCLoopTail(pos, isInline)
	case p.check(IDENTIFIER) && p.peekAhead(1).Kind == IN:
		return p.parseInLoopTail(pos, isInline)
	default:
		cond, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if cond == nil {
			return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		body, err := p.parseLoopBody()
		if err != nil {
			return nil, err
		}
		return ast.Alloc(p.arena, ast.WhileLoop{
			Pos:    pos,
			Inline: isInline,
			Cond:   cond,
			Body:   body,
		}), nil
	}
}

// cStyleHeaderAhead reports whether a semicolon occurs before the loop
// header's closing parenthesis, which selects the C-style form. The opening
// parenthesis has already been consumed.
func (p *Parser) cStyleHeaderAhead() bool {
	depth := 0
	for i := 0; ; i++ {
		switch p.peekAhead(i).Kind {
		case SEMICOLON:
			if depth == 0 {
				return true
			}
		case LPAREN:
			depth++
		case RPAREN:
			if depth == 0 {
				return false
			}
			depth--
		case LBRACE, TOK_EOF:
			return false
		}
	}
}

// parseCLoopTail parses the remainder of: loop ( init? ; cond? ; post? ) Block
func (p *Parser) parseCLoopTail(pos ast.Position, isInline bool) (ast.Stmt, error) {
	var init ast.Stmt
	initExpr, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if initExpr != nil {
		init = ast.Alloc(p.arena, ast.ExprStmt{Pos: initExpr.Position(), X: initExpr})
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}

	post, err := p.parseAssignExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}

	return ast.Alloc(p.arena, ast.CLoop{
		Pos:    pos,
		Inline: isInline,
		Init:   init,
		Cond:   cond,
		Post:   post,
		Body:   body,
	}), nil
}

// parseInLoopTail parses the remainder of: loop ( IDENT in Expr ) Block
func (p *Parser) parseInLoopTail(pos ast.Position, isInline bool) (ast.Stmt, error) {
	varTok := p.chomp() // identifier, checked by the caller
	p.chomp()           // `in`

	rangeExpr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if rangeExpr == nil {
		return nil, p.errorHere("expected expression; found `%s`", p.describe(p.peek()))
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	body, err := p.parseLoopBody()
	if err != nil {
		return nil, err
	}

	return ast.Alloc(p.arena, ast.InLoop{
		Pos:    pos,
		Inline: isInline,
		Var:    p.interner.InternBytes(varTok.Bytes(p.source)),
		Range:  rangeExpr,
		Body:   body,
	}), nil
}

func (p *Parser) parseLoopBody() (*ast.Block, error) {
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, p.errorHere("expected loop body; found `%s`", p.describe(p.peek()))
	}
	return body, nil
}

// parseBlock parses: { Stmt* }
//
// An empty block is valid; a missing closing brace is an error.
func (p *Parser) parseBlock() (*ast.Block, error) {
	lbrace, ok := p.chompIf(LBRACE)
	if !ok {
		return nil, nil
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	block := ast.Alloc(p.arena, ast.Block{
		Pos: p.tokenPosition(lbrace),
	})

	for {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if stmt == nil {
			break
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	if _, err := p.expect(RBRACE); err != nil {
		return nil, err
	}

	return block, nil
}
