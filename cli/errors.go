package cli

import (
	"github.com/quill-lang/quill/errors"
)

// ErrorRenderer renders front-end errors with source context.
type ErrorRenderer struct {
	formatter *errors.TextFormatter
}

// NewErrorRenderer creates a renderer over the given source content.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	return &ErrorRenderer{
		formatter: errors.NewTextFormatter(errors.WithSource(source)),
	}
}

// Render renders a single error.
func (r *ErrorRenderer) Render(err error) string {
	return r.formatter.Format(err)
}

// RenderAll renders multiple errors.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	return r.formatter.FormatAll(errs)
}
