// Package printer renders a Quill AST back to source text.
//
// The output is deliberately naive: binary expressions are fully
// parenthesized (assignments other than += and -= print bare) and no column
// alignment is attempted. The one property the
// printer guarantees is that re-parsing its output yields a structurally
// equal tree (positions aside), which is what `quill fmt` and the parser's
// round-trip tests rely on.
package printer

import (
	"fmt"
	"io"
	"strings"

	"github.com/quill-lang/quill/ast"
)

// Printer renders AST nodes to a writer.
type Printer struct {
	indent string
}

// Option configures a Printer.
type Option func(*Printer)

// WithIndent sets the indentation unit. Default is two spaces.
func WithIndent(indent string) Option {
	return func(p *Printer) {
		p.indent = indent
	}
}

// New creates a Printer.
func New(opts ...Option) *Printer {
	p := &Printer{indent: "  "}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Fprint renders a file to w.
func (p *Printer) Fprint(w io.Writer, file *ast.File) error {
	var buf strings.Builder
	for i, node := range file.Decls {
		if i > 0 {
			buf.WriteByte('\n')
		}
		p.node(&buf, node, 0)
		buf.WriteByte('\n')
	}
	_, err := io.WriteString(w, buf.String())
	return err
}

// Sprint renders a file to a string.
func (p *Printer) Sprint(file *ast.File) string {
	var buf strings.Builder
	_ = p.Fprint(&buf, file)
	return buf.String()
}

func (p *Printer) pad(buf *strings.Builder, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(p.indent)
	}
}

// node renders a top-level declaration or statement.
func (p *Printer) node(buf *strings.Builder, n ast.Node, depth int) {
	switch n := n.(type) {
	case *ast.FuncDecl:
		p.funcProto(buf, n.Proto)
		buf.WriteByte(' ')
		p.block(buf, n.Body, depth)
	case *ast.FuncProto:
		p.funcProto(buf, n)
		buf.WriteByte(';')
	case ast.Stmt:
		p.stmt(buf, n, depth)
	}
}

func (p *Printer) funcProto(buf *strings.Builder, proto *ast.FuncProto) {
	if proto.Export {
		buf.WriteString("export ")
	}
	buf.WriteString("func ")
	buf.WriteString(proto.Name)
	buf.WriteByte('(')
	for i, param := range proto.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		if param.IsVarArgs {
			buf.WriteString("...")
		}
		p.expr(buf, param.Type, 0)
		if param.Name != "" {
			buf.WriteByte(' ')
			buf.WriteString(param.Name)
		}
	}
	buf.WriteString(") -> ")
	p.expr(buf, proto.ReturnType, 0)
}

func (p *Printer) stmt(buf *strings.Builder, s ast.Stmt, depth int) {
	switch s := s.(type) {
	case *ast.VarDecl:
		if s.Export {
			buf.WriteString("export ")
		}
		if s.Mutable {
			buf.WriteString("mutable ")
		}
		if s.Const {
			buf.WriteString("const ")
		}
		if s.Type != nil {
			p.expr(buf, s.Type, depth)
			buf.WriteByte(' ')
		}
		buf.WriteString(s.Name)
		if s.Value != nil {
			buf.WriteString(" = ")
			p.expr(buf, s.Value, depth)
		}
		buf.WriteByte(';')

	case *ast.ExprStmt:
		p.expr(buf, s.X, depth)
		buf.WriteByte(';')

	case *ast.Block:
		if s.Label != "" {
			buf.WriteString(s.Label)
			buf.WriteString(": ")
		}
		p.block(buf, s, depth)

	case *ast.IfStmt:
		buf.WriteString("if (")
		p.expr(buf, s.Cond, depth)
		buf.WriteString(") ")
		p.stmt(buf, s.Then, depth)
		if s.HasElse {
			buf.WriteString(" else ")
			p.stmt(buf, s.Else, depth)
		}

	case *ast.DeferStmt:
		buf.WriteString("defer ")
		p.stmt(buf, s.Stmt, depth)

	case *ast.CLoop:
		p.loopHead(buf, s.Label, s.Inline)
		buf.WriteByte('(')
		if s.Init != nil {
			if init, ok := s.Init.(*ast.ExprStmt); ok {
				p.expr(buf, init.X, depth)
			}
		}
		buf.WriteString("; ")
		if s.Cond != nil {
			p.expr(buf, s.Cond, depth)
		}
		buf.WriteString("; ")
		if s.Post != nil {
			p.expr(buf, s.Post, depth)
		}
		buf.WriteString(") ")
		p.block(buf, s.Body, depth)

	case *ast.WhileLoop:
		p.loopHead(buf, s.Label, s.Inline)
		if s.Cond != nil {
			buf.WriteByte('(')
			p.expr(buf, s.Cond, depth)
			buf.WriteString(") ")
		}
		p.block(buf, s.Body, depth)

	case *ast.InLoop:
		p.loopHead(buf, s.Label, s.Inline)
		buf.WriteByte('(')
		buf.WriteString(s.Var)
		buf.WriteString(" in ")
		p.expr(buf, s.Range, depth)
		buf.WriteString(") ")
		p.block(buf, s.Body, depth)

	case *ast.MatchExpr:
		p.matchExpr(buf, s, depth)

	case *ast.BreakStmt, *ast.ContinueStmt, *ast.ReturnStmt:
		p.expr(buf, s.(ast.Expr), depth)
		buf.WriteByte(';')
	}
}

func (p *Printer) loopHead(buf *strings.Builder, label string, inline bool) {
	if label != "" {
		buf.WriteString(label)
		buf.WriteString(": ")
	}
	if inline {
		buf.WriteString("inline ")
	}
	buf.WriteString("loop ")
}

func (p *Printer) block(buf *strings.Builder, b *ast.Block, depth int) {
	if len(b.Stmts) == 0 {
		buf.WriteString("{}")
		return
	}
	buf.WriteString("{\n")
	for _, s := range b.Stmts {
		p.pad(buf, depth+1)
		p.stmt(buf, s, depth+1)
		buf.WriteByte('\n')
	}
	p.pad(buf, depth)
	buf.WriteByte('}')
}

func (p *Printer) matchExpr(buf *strings.Builder, m *ast.MatchExpr, depth int) {
	buf.WriteString("match (")
	p.expr(buf, m.Cond, depth)
	buf.WriteString(") {\n")
	for _, branch := range m.Branches {
		p.pad(buf, depth+1)
		if branch.IsElse {
			buf.WriteString("else")
		} else {
			for i, c := range branch.Cases {
				if i > 0 {
					buf.WriteString(", ")
				}
				p.expr(buf, c, depth+1)
			}
		}
		buf.WriteString(" => ")
		p.expr(buf, branch.Body, depth+1)
		buf.WriteString(",\n")
	}
	p.pad(buf, depth)
	buf.WriteByte('}')
}

func (p *Printer) expr(buf *strings.Builder, e ast.Expr, depth int) {
	switch e := e.(type) {
	case *ast.Ident:
		buf.WriteString(e.Name)

	case *ast.BasicLit:
		switch e.Kind {
		case ast.StringLit:
			buf.WriteByte('"')
			buf.WriteString(e.Lexeme)
			buf.WriteByte('"')
		case ast.CharLit:
			buf.WriteByte('\'')
			buf.WriteString(e.Lexeme)
			buf.WriteByte('\'')
		default:
			buf.WriteString(e.Lexeme)
		}

	case *ast.BoolLit:
		if e.Value {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}

	case *ast.NullLit:
		buf.WriteString("null")

	case *ast.Unreachable:
		buf.WriteString("unreachable")

	case *ast.BinaryExpr:
		// Assignment-level operators cannot appear inside parentheses, so
		// they print bare; everything else is fully parenthesized to make
		// the precedence explicit on re-parse.
		if e.Op.IsAssignment() && e.Op != ast.BinaryOpAssignPlus && e.Op != ast.BinaryOpAssignMinus {
			p.expr(buf, e.X, depth)
			fmt.Fprintf(buf, " %s ", e.Op)
			p.expr(buf, e.Y, depth)
		} else {
			buf.WriteByte('(')
			p.expr(buf, e.X, depth)
			fmt.Fprintf(buf, " %s ", e.Op)
			p.expr(buf, e.Y, depth)
			buf.WriteByte(')')
		}

	case *ast.PrefixExpr:
		buf.WriteString(e.Op.String())
		buf.WriteByte('(')
		p.expr(buf, e.X, depth)
		buf.WriteByte(')')

	case *ast.IfExpr:
		buf.WriteString("if (")
		p.expr(buf, e.Cond, depth)
		buf.WriteString(") ")
		p.expr(buf, e.Then, depth)
		if e.HasElse {
			buf.WriteString(" else ")
			p.expr(buf, e.Else, depth)
		}

	case *ast.MatchExpr:
		p.matchExpr(buf, e, depth)

	case *ast.CallExpr:
		p.expr(buf, e.Fun, depth)
		buf.WriteByte('(')
		for i, arg := range e.Args {
			if i > 0 {
				buf.WriteString(", ")
			}
			p.expr(buf, arg, depth)
		}
		buf.WriteByte(')')

	case *ast.IndexExpr:
		p.expr(buf, e.X, depth)
		buf.WriteByte('[')
		p.expr(buf, e.Index, depth)
		buf.WriteByte(']')

	case *ast.SliceExpr:
		p.expr(buf, e.X, depth)
		buf.WriteByte('[')
		if e.Low != nil {
			p.expr(buf, e.Low, depth)
		}
		buf.WriteString(" .. ")
		if e.High != nil {
			p.expr(buf, e.High, depth)
		}
		buf.WriteByte(']')

	case *ast.InitList:
		buf.WriteByte('{')
		for i, entry := range e.Entries {
			if i > 0 {
				buf.WriteString(", ")
			}
			p.expr(buf, entry, depth)
		}
		buf.WriteByte('}')

	case *ast.Block:
		p.block(buf, e, depth)

	case *ast.BreakStmt:
		buf.WriteString("break")
		if e.Label != "" {
			buf.WriteString(" :")
			buf.WriteString(e.Label)
		}
		if e.Value != nil {
			buf.WriteByte(' ')
			p.expr(buf, e.Value, depth)
		}

	case *ast.ContinueStmt:
		buf.WriteString("continue")
		if e.Label != "" {
			buf.WriteString(" :")
			buf.WriteString(e.Label)
		}

	case *ast.ReturnStmt:
		buf.WriteString("return")
		if e.Value != nil {
			buf.WriteByte(' ')
			p.expr(buf, e.Value, depth)
		}

	case *ast.PrefixTypeExpr:
		buf.WriteString(e.Op.String())
		p.expr(buf, e.Base, depth)

	case *ast.FuncProto:
		p.funcProto(buf, e)
	}
}
