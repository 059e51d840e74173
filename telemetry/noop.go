package telemetry

import (
	"io"

	"github.com/quill-lang/quill/output"
)

// noOpCollector is returned by FromContext when no collector is installed.
type noOpCollector struct{}

func (noOpCollector) Start(name string) Timer { return noOpTimer{} }

func (noOpCollector) Report(w io.Writer, styles *output.Styles) {}

type noOpTimer struct{}

func (noOpTimer) End()                    {}
func (noOpTimer) Child(name string) Timer { return noOpTimer{} }
