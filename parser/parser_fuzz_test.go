package parser

import (
	"testing"
)

// FuzzParser checks that arbitrary input either parses or fails with a
// positioned error value; it must never panic or loop.
func FuzzParser(f *testing.F) {
	seeds := []string{
		"x = 1 + 2 * 3;",
		"if (a) b; else c;",
		"func f(Int a, ...Int rest) -> Int { return a; }",
		"outer: loop (i = 0; i < 10; i += 1) { break :outer; }",
		"match (x) { 1, 2 => a, else => b }",
		"mutable ?*[]Int xs = {1, 2, 3};",
		"defer { close(f); }",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		file, err := Parse([]byte(input), "fuzz.ql")
		if err != nil {
			switch e := err.(type) {
			case *LexError:
				if e.Pos.Line < 1 {
					t.Fatalf("unpositioned lex error: %v", e)
				}
			case *ParseError:
				if e.Pos.Line < 1 {
					t.Fatalf("unpositioned parse error: %v", e)
				}
			default:
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}
		if file == nil {
			t.Fatal("nil file without error")
		}
	})
}
