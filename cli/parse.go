package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/quill-lang/quill"
)

type ParseCmd struct {
	File   FileOrStdin `help:"Quill input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string      `help:"Output format: text or json." enum:"text,json" default:"text"`
}

func (cmd *ParseCmd) Run(ctx *kong.Context, globals *Globals) error {
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

	switch cmd.Format {
	case "json":
		data, err := json.MarshalIndent(file, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(ctx.Stdout, string(data))
	default:
		_, _ = fmt.Fprintln(ctx.Stdout, repr.String(file, repr.Indent("  "), repr.OmitEmpty(true)))
	}

	return nil
}
