package main

import (
	"github.com/alecthomas/kong"

	"github.com/quill-lang/quill/cli"
)

func main() {
	commands := &cli.Commands{}

	ctx := kong.Parse(commands,
		kong.Name("quill"),
		kong.Description("The Quill language front-end: lexer, parser, and AST tools."),
		kong.UsageOnError(),
	)

	err := ctx.Run(&commands.Globals)
	ctx.FatalIfErrorf(err)
}
