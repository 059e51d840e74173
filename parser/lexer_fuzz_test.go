package parser

import (
	"testing"
)

// FuzzLexer checks the lexer's structural invariant on arbitrary input:
// ScanAll either fails with a positioned error or returns a stream ending in
// exactly one EOF token, with every token's byte range inside the source.
func FuzzLexer(f *testing.F) {
	seeds := []string{
		"",
		"func f() -> Int { return 0; }",
		`x = "str with \" escape";`,
		"/* block */ // line\n",
		"a <<= b >>= c ... .. . :: :",
		"\xef\xbb\xbfexport mutable Int x = 0;",
		"'c' '\\n' \"\"",
		"0 007 123.45 1..5",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, input string) {
		source := []byte(input)
		tokens, err := NewLexer(source, "fuzz.ql").ScanAll()
		if err != nil {
			lexErr, ok := err.(*LexError)
			if !ok {
				t.Fatalf("non-LexError from ScanAll: %v", err)
			}
			if lexErr.Pos.Line < 1 || lexErr.Pos.Column < 1 {
				t.Fatalf("unpositioned lex error: %+v", lexErr.Pos)
			}
			return
		}

		if len(tokens) == 0 {
			t.Fatal("no tokens returned")
		}
		eofs := 0
		for _, tok := range tokens {
			if tok.Kind == TOK_EOF {
				eofs++
			}
			if tok.Start < 0 || tok.End > len(source) || tok.Start > tok.End {
				t.Fatalf("token range [%d, %d) outside source of %d bytes", tok.Start, tok.End, len(source))
			}
		}
		if eofs != 1 || tokens[len(tokens)-1].Kind != TOK_EOF {
			t.Fatalf("expected exactly one trailing EOF, got %d", eofs)
		}
	})
}
