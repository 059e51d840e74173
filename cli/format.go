package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/quill-lang/quill"
	"github.com/quill-lang/quill/printer"
)

type FormatCmd struct {
	File  FileOrStdin `help:"Quill input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Write bool        `help:"Rewrite the file in place instead of printing to stdout." short:"w"`
}

func (cmd *FormatCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	file, err := quill.ParseBytes(context.Background(), source, cmd.File.GetAbsoluteFilename())
	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "parse failed")
		os.Exit(1)
	}

	formatted := printer.New().Sprint(file)

	if !cmd.Write || cmd.File.Filename == "<stdin>" {
		_, _ = fmt.Fprint(ctx.Stdout, formatted)
		return nil
	}

	confirm, err := promptYesNo(fmt.Sprintf("Rewrite %s in place?", cmd.File.Filename))
	if err != nil {
		return err
	}
	if !confirm {
		printInfof(ctx.Stdout, "left %s unchanged", cmd.File.Filename)
		return nil
	}

	if err := os.WriteFile(cmd.File.Filename, []byte(formatted), 0o644); err != nil {
		return err
	}
	printSuccess(ctx.Stdout, fmt.Sprintf("formatted %s", cmd.File.Filename))
	return nil
}
