// Package telemetry provides hierarchical timing collection for front-end
// phases. Collectors travel through context so the lexer and parser drivers
// can be instrumented without changing signatures; with no collector in the
// context every operation is a no-op.
//
// Example usage:
//
//	collector := telemetry.NewTimingCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	timer := collector.Start("parse main.ql")
//	lexTimer := timer.Child("lex")
//	// ... scan ...
//	lexTimer.End()
//	timer.End()
//
//	collector.Report(os.Stderr, styles)
package telemetry

import (
	"context"
	"io"

	"github.com/quill-lang/quill/output"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Collector collects telemetry data.
type Collector interface {
	// Start begins timing an operation and returns a Timer.
	Start(name string) Timer

	// Report outputs the collected telemetry to a writer. The styles
	// parameter adds terminal styling and may be nil.
	Report(w io.Writer, styles *output.Styles)
}

// Timer tracks a single operation's timing. Timers nest via Child.
type Timer interface {
	// End stops the timer and records the duration.
	End()

	// Child creates a nested timer under this timer.
	Child(name string) Timer
}

// WithCollector adds a collector to a context.
func WithCollector(ctx context.Context, collector Collector) context.Context {
	return context.WithValue(ctx, collectorKey, collector)
}

// FromContext extracts the collector from context. If no collector is
// present, returns a no-op collector.
func FromContext(ctx context.Context) Collector {
	if collector, ok := ctx.Value(collectorKey).(Collector); ok {
		return collector
	}
	return noOpCollector{}
}
