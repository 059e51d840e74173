// Package ast declares the types used to represent syntax trees for Quill
// source files.
//
// Every node carries the position of its first token. Nodes are allocated in
// an Arena tied to the parse that produced them; child references are
// non-owning pointers into the same arena. The tree has no sharing and no
// cycles.
package ast

// Node is the interface implemented by all AST nodes.
type Node interface {
	Position() Position
}

// Decl is the interface implemented by declaration nodes.
type Decl interface {
	Node
	declNode()
}

// Stmt is the interface implemented by statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is the interface implemented by expression nodes. Type expressions
// are expressions: a type is a chain of prefix type operators applied to a
// suffix expression.
type Expr interface {
	Node
	exprNode()
}

// File is the root of a parsed source file: the top-level declarations and
// statements in source order.
type File struct {
	Pos      Position
	Filename string
	Decls    []Node
}

func (f *File) Position() Position { return f.Pos }
