package parser

import (
	"fmt"
	"strings"
	"testing"
)

// benchSource builds a synthetic source file of n functions, mirroring the
// shape produced by tools/gensource minus its `if` statement.
func benchSource(n int) []byte {
	var buf strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "func compute%d(Int a, Int b) -> Int {\n", i)
		fmt.Fprintf(&buf, "  mutable Int total = (a + b) * %d;\n", i%97)
		buf.WriteString("  loop (i = 0; i < b; i += 1) {\n")
		buf.WriteString("    total += a * i;\n")
		buf.WriteString("  }\n")
		buf.WriteString("  return total;\n")
		buf.WriteString("}\n\n")
	}
	return []byte(buf.String())
}

func BenchmarkLexer(b *testing.B) {
	source := benchSource(1000)
	b.SetBytes(int64(len(source)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := NewLexer(source, "bench.ql").ScanAll(); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkParser(b *testing.B) {
	source := benchSource(1000)
	b.SetBytes(int64(len(source)))
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := Parse(source, "bench.ql"); err != nil {
			b.Fatal(err)
		}
	}
}
