// Package errors provides rendering infrastructure for front-end
// diagnostics. It separates presentation from the parser's positioned error
// values, so the same LexError or ParseError can be rendered as annotated
// text for the CLI or as structured JSON for tooling.
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/exp/slices"

	"github.com/quill-lang/quill/ast"
)

// Positioned is implemented by errors that carry a source position.
// Both lexer and parser errors satisfy it.
type Positioned interface {
	GetPosition() ast.Position
	Error() string
}

// Formatter formats errors for output.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// TextFormatter renders errors for command-line output, quoting the source
// line and pointing a caret at the error column.
type TextFormatter struct {
	source []byte // Optional source content for context rendering
}

// TextFormatterOption configures a TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source content used for context lines.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = source
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error. Positioned errors with source content get
// the quoted line and caret; everything else falls back to Error().
func (tf *TextFormatter) Format(err error) string {
	if e, ok := err.(Positioned); ok && tf.source != nil {
		return tf.formatWithSourceContext(e.GetPosition(), e.Error())
	}
	return err.Error()
}

// FormatAll formats multiple errors separated by blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(tf.Format(err))
		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}
	return buf.String()
}

// formatWithSourceContext renders the message followed by the source lines
// around the error position, with a caret under the error column.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string) string {
	var buf bytes.Buffer

	buf.WriteString(message)
	buf.WriteString("\n\n")

	sourceLines := strings.Split(string(tf.source), "\n")

	// Show up to two lines before and two after the error line.
	startLine := pos.Line - 3
	endLine := pos.Line + 1
	if startLine < 0 {
		startLine = 0
	}
	if endLine >= len(sourceLines) {
		endLine = len(sourceLines) - 1
	}

	for i := startLine; i <= endLine; i++ {
		if i >= len(sourceLines) {
			break
		}
		buf.WriteString("   ")
		buf.WriteString(sourceLines[i])
		buf.WriteByte('\n')

		if i == pos.Line-1 && pos.Column > 0 {
			buf.WriteString("   ")
			buf.WriteString(caretPadding(sourceLines[i], pos.Column))
			buf.WriteString("^\n")
		}
	}

	return buf.String()
}

// caretPadding builds the whitespace run that places a caret under the given
// 1-indexed byte column. Columns count bytes, but the terminal renders
// display cells, so the prefix before the error column is measured with
// runewidth; tabs are preserved so the caret line expands the same way the
// source line does.
func caretPadding(line string, column int) string {
	end := column - 1
	if end > len(line) {
		end = len(line)
	}
	prefix := line[:end]

	var pad strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			pad.WriteByte('\t')
			continue
		}
		for i := 0; i < runewidth.RuneWidth(r); i++ {
			pad.WriteByte(' ')
		}
	}
	return pad.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string        `json:"type"`
	Message  string        `json:"message"`
	Position *PositionJSON `json:"position,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array, sorted by position.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	jsonErrors := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		jsonErrors = append(jsonErrors, jf.toJSON(err))
	}

	slices.SortFunc(jsonErrors, func(a, b ErrorJSON) int {
		if a.Position == nil || b.Position == nil {
			return 0
		}
		if a.Position.Line != b.Position.Line {
			return a.Position.Line - b.Position.Line
		}
		return a.Position.Column - b.Position.Column
	})

	data, _ := json.MarshalIndent(jsonErrors, "", "  ")
	return string(data)
}

// toJSON converts an error to ErrorJSON.
func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
	}

	if e, ok := err.(Positioned); ok {
		pos := e.GetPosition()
		errJSON.Position = &PositionJSON{
			Filename: pos.Filename,
			Line:     pos.Line,
			Column:   pos.Column,
		}
	}

	return errJSON
}
