package quill

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/parser"
	"github.com/quill-lang/quill/telemetry"
)

func TestParseString(t *testing.T) {
	file, err := ParseString(context.Background(), "func main() -> Int { return 0; }", "main.ql")
	assert.NoError(t, err)
	assert.Equal(t, 1, len(file.Decls))

	fn, ok := file.Decls[0].(*ast.FuncDecl)
	assert.True(t, ok)
	assert.Equal(t, "main", fn.Proto.Name)
}

func TestParseBytesReportsLexErrors(t *testing.T) {
	_, err := ParseBytes(context.Background(), []byte("/* unterminated"), "main.ql")
	assert.Error(t, err)

	lexErr, ok := err.(*parser.LexError)
	assert.True(t, ok)
	assert.Equal(t, 1, lexErr.Pos.Line)
	assert.Equal(t, 1, lexErr.Pos.Column)
}

func TestParseBytesRecordsPhaseTimings(t *testing.T) {
	collector := telemetry.NewTimingCollector()
	ctx := telemetry.WithCollector(context.Background(), collector)

	_, err := ParseBytes(ctx, []byte("x = 1;"), "main.ql")
	assert.NoError(t, err)

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	out := buf.String()

	assert.True(t, strings.Contains(out, "frontend main.ql"))
	assert.True(t, strings.Contains(out, "lex"))
	assert.True(t, strings.Contains(out, "parse"))
}
