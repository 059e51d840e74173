package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/quill-lang/quill"
	"github.com/quill-lang/quill/output"
	"github.com/quill-lang/quill/telemetry"
)

type CheckCmd struct {
	File  FileOrStdin `help:"Quill input filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Watch bool        `help:"Re-check the file whenever it changes on disk."`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	ok, err := cmd.checkOnce(ctx, globals)
	if err != nil {
		return err
	}

	if cmd.Watch && cmd.File.Filename != "<stdin>" {
		return cmd.watch(ctx, globals)
	}

	if !ok {
		os.Exit(1)
	}
	return nil
}

// checkOnce parses the file and reports the outcome. It returns whether the
// parse succeeded; I/O failures are returned as errors.
func (cmd *CheckCmd) checkOnce(ctx *kong.Context, globals *Globals) (bool, error) {
	runCtx := context.Background()

	var collector telemetry.Collector
	if globals.Telemetry {
		collector = telemetry.NewTimingCollector()
		runCtx = telemetry.WithCollector(runCtx, collector)
	}

	source, err := cmd.File.GetSourceContent()
	if err != nil {
		return false, fmt.Errorf("failed to read source: %w", err)
	}

	file, err := quill.ParseBytes(runCtx, source, cmd.File.GetAbsoluteFilename())

	if collector != nil {
		_, _ = fmt.Fprintln(ctx.Stderr)
		collector.Report(ctx.Stderr, output.NewStyles(ctx.Stderr))
	}

	if err != nil {
		renderer := NewErrorRenderer(source)
		_, _ = fmt.Fprintln(ctx.Stderr, renderer.Render(err))
		printError(ctx.Stderr, "check failed")
		return false, nil
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d top-level declarations)", len(file.Decls)))
	return true, nil
}

// watch re-runs the check whenever the file is written. Editors often
// replace files via rename, so the parent directory is watched and events
// are filtered by name.
func (cmd *CheckCmd) watch(ctx *kong.Context, globals *Globals) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	target := cmd.File.GetAbsoluteFilename()
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return err
	}

	printInfof(ctx.Stdout, "watching %s", cmd.File.Filename)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if _, err := cmd.checkOnce(ctx, globals); err != nil {
				return err
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			printError(ctx.Stderr, err.Error())
		}
	}
}
