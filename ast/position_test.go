package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{
			name: "with filename",
			pos:  Position{Filename: "main.ql", Line: 3, Column: 7},
			want: "main.ql:3:7",
		},
		{
			name: "without filename",
			pos:  Position{Line: 1, Column: 1},
			want: "1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.pos.String())
		})
	}
}

func TestPositionIsValid(t *testing.T) {
	assert.False(t, Position{}.IsValid())
	assert.True(t, Position{Line: 1, Column: 1}.IsValid())
}

func TestSpanText(t *testing.T) {
	source := []byte("hello world")

	assert.Equal(t, "hello", Span{Start: 0, End: 5}.Text(source))
	assert.Equal(t, "world", Span{Start: 6, End: 11}.Text(source))
	assert.Equal(t, "", Span{}.Text(source))
	assert.Equal(t, "", Span{Start: 5, End: 100}.Text(source))
}
