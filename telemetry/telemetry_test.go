package telemetry

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestFromContextDefaultsToNoOp(t *testing.T) {
	collector := FromContext(context.Background())

	// Safe to use without a collector installed.
	timer := collector.Start("anything")
	timer.Child("nested").End()
	timer.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}

func TestFromContextRoundTrip(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	got := FromContext(ctx)
	assert.True(t, got == Collector(collector))
}

func TestTimingCollectorTree(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("frontend main.ql")
	lex := root.Child("lex")
	lex.End()
	parse := root.Child("parse")
	parse.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	assert.True(t, strings.HasPrefix(lines[0], "frontend main.ql: "))
	assert.True(t, strings.Contains(lines[1], "├─ lex"))
	assert.True(t, strings.Contains(lines[2], "└─ parse"))
}

func TestTimingCollectorNestedStart(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("outer")
	inner := collector.Start("inner") // nests under the open timer
	inner.End()
	root.End()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "outer: "))
	assert.True(t, strings.Contains(out, "└─ inner"))
}

func TestTimingCollectorEmptyReport(t *testing.T) {
	collector := NewTimingCollector()

	var buf bytes.Buffer
	collector.Report(&buf, nil)
	assert.Equal(t, "", buf.String())
}
