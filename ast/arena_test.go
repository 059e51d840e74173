package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestArenaAlloc(t *testing.T) {
	arena := NewArena()

	ident := Alloc(arena, Ident{Name: "x"})
	assert.Equal(t, "x", ident.Name)
	assert.Equal(t, 1, arena.Len())

	lit := Alloc(arena, BoolLit{Value: true})
	assert.True(t, lit.Value)
	assert.Equal(t, 2, arena.Len())
}

func TestArenaPointerStability(t *testing.T) {
	// Pointers handed out stay valid across chunk growth.
	arena := NewArena()

	first := Alloc(arena, Ident{Name: "first"})
	var all []*Ident
	for i := 0; i < chunkSize*3; i++ {
		all = append(all, Alloc(arena, Ident{Name: "n"}))
	}

	assert.Equal(t, "first", first.Name)
	for _, p := range all {
		assert.Equal(t, "n", p.Name)
	}
	assert.Equal(t, chunkSize*3+1, arena.Len())
}

func TestArenaMixedTypes(t *testing.T) {
	arena := NewArena()

	bin := Alloc(arena, BinaryExpr{Op: BinaryOpAdd})
	bin.X = Alloc(arena, Ident{Name: "a"})
	bin.Y = Alloc(arena, Ident{Name: "b"})

	assert.Equal(t, 3, arena.Len())
	assert.Equal(t, "a", bin.X.(*Ident).Name)
	assert.Equal(t, "b", bin.Y.(*Ident).Name)
}
