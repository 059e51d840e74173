package printer

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/quill-lang/quill/parser"
)

// roundTrip parses input, prints it, re-parses the output, and asserts the
// second print is identical. The printer is deterministic on structure and
// ignores positions, so print equality is structural equality.
func roundTrip(t *testing.T, input string) string {
	t.Helper()

	first, err := parser.Parse([]byte(input), "rt.ql")
	assert.NoError(t, err)

	p := New()
	printed := p.Sprint(first)

	second, err := parser.Parse([]byte(printed), "rt.ql")
	assert.NoError(t, err)

	reprinted := p.Sprint(second)
	assert.Equal(t, printed, reprinted)

	return printed
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"var decl", "x = 1 + 2 * 3;"},
		{"typed var decl", "mutable ?*[]Int xs = null;"},
		{"exported const", `export const greeting = "hello";`},
		{"if else", "if (a) b; else c;"},
		{"nested if", "if (a) { if (b) c; else d; }"},
		{"func decl", "func f() -> Int { return 0; }"},
		{"func params", "func add(Int a, Int b) -> Int { return (a + b); }"},
		{"variadic", "func log(String fmt, ...Int args) -> Void;"},
		{"c loop", "loop (i = 0; i < 10; i += 1) { f(i); }"},
		{"while loop", "outer: loop (x < 10) { x += 1; }"},
		{"in loop", "loop (item in items) { use(item); }"},
		{"headless loop", "loop { break; }"},
		{"inline loop", "inline loop (x < 3) {}"},
		{"defer", "defer close(f);"},
		{"match", "match (x) { 1, 2 => a, else => b, }"},
		{"init list", "xs = {1, 2, 3};"},
		{"empty init list", "xs = {};"},
		{"suffixes", "x = f(1)[0][1 .. 5];"},
		{"prefix ops", "x = !(-a);"},
		{"break with value", "loop { break :outer 42; }"},
		{"if expression", "x = if (a) 1 else 2;"},
		{"labeled block", "outer: { x = 1; }"},
		{"compound assign", "x <<= 2;"},
		{"literals", `x = {true, false, null, 'c', "s", 1.5};`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roundTrip(t, tt.input)
		})
	}
}

func TestPrintPrecedenceExplicit(t *testing.T) {
	// The naive printer parenthesizes binary expressions so precedence is
	// explicit in the output.
	printed := roundTrip(t, "x = a + b * c;")
	assert.Equal(t, "x = (a + (b * c));\n", printed)
}

func TestPrintIfStatement(t *testing.T) {
	printed := roundTrip(t, "if (a) b; else c;")
	assert.Equal(t, "if (a) b; else c;\n", printed)
}

func TestPrintFuncDecl(t *testing.T) {
	printed := roundTrip(t, "func f() -> Int { return 0; }")
	assert.Equal(t, "func f() -> Int {\n  return 0;\n}\n", printed)
}

func TestPrintCustomIndent(t *testing.T) {
	file, err := parser.Parse([]byte("func f() -> Int { return 0; }"), "rt.ql")
	assert.NoError(t, err)

	printed := New(WithIndent("\t")).Sprint(file)
	assert.Equal(t, "func f() -> Int {\n\treturn 0;\n}\n", printed)
}
