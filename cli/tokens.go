package cli

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/quill-lang/quill/parser"
)

type TokensCmd struct {
	File FileOrStdin `help:"Quill input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

func (cmd *TokensCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	tokens, err := parser.NewLexer(source, cmd.File.GetAbsoluteFilename()).ScanAll()
	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "lex failed")
		os.Exit(1)
	}

	for _, tok := range tokens {
		lexeme := tok.String(source)
		if lexeme == "" {
			lexeme = tok.Kind.String()
		}
		_, _ = fmt.Fprintf(ctx.Stdout, "%4d:%-3d %-12s %q\n", tok.Line, tok.Column, tok.Kind, lexeme)
	}

	return nil
}
