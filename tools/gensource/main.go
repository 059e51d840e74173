// Command gensource generates large synthetic Quill source files for
// benchmarking the lexer and parser.
//
// Usage: go run ./tools/gensource -funcs 10000 > large.ql
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
)

func main() {
	funcs := flag.Int("funcs", 10000, "number of functions to generate")
	flag.Parse()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	for i := 0; i < *funcs; i++ {
		fmt.Fprintf(w, "func compute%d(Int a, Int b) -> Int {\n", i)
		fmt.Fprintf(w, "  mutable Int total = (a + b) * %d;\n", i%97)
		fmt.Fprintf(w, "  loop (i = 0; i < b; i += 1) {\n")
		fmt.Fprintf(w, "    total += a * i;\n")
		fmt.Fprintf(w, "  }\n")
		fmt.Fprintf(w, "  if (total > 1000) total -= 1000;\n")
		fmt.Fprintf(w, "  return total;\n")
		fmt.Fprintf(w, "}\n\n")
	}
}
