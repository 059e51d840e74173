// Package loader reads Quill source into memory for the front-end. The
// lexer consumes a fully materialized byte buffer; this package reads it
// from disk.
package loader

import (
	"fmt"
	"os"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/parser"
)

// maxSourceSize guards against accidentally lexing a multi-gigabyte file.
const maxSourceSize = 512 << 20

// Source is an in-memory source file.
type Source struct {
	Filename string
	Contents []byte
}

// Loader reads and parses source files.
type Loader struct{}

// New creates a Loader.
func New() *Loader {
	return &Loader{}
}

// Read loads a file from disk.
func (l *Loader) Read(filename string) (*Source, error) {
	info, err := os.Stat(filename)
	if err != nil {
		return nil, err
	}
	if info.Size() > maxSourceSize {
		return nil, fmt.Errorf("%s: source file too large (%d bytes)", filename, info.Size())
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return &Source{Filename: filename, Contents: contents}, nil
}

// Parse runs the front-end over a source: lex to completion, then parse.
func (l *Loader) Parse(src *Source) (*ast.File, error) {
	return parser.Parse(src.Contents, src.Filename)
}
