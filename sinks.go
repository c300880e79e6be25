package domalign

import (
	"io"
	"log/slog"

	"github.com/hazyhaar/domalign/internal/sink"
)

// Sink is the output interface for placement reports.
type Sink = sink.Sink

// PlacementFunc is called for each placement.
type PlacementFunc = sink.PlacementFunc

// SummaryFunc is called for each run summary.
type SummaryFunc = sink.SummaryFunc

// NewStdoutSink creates a stdout JSON-lines sink.
func NewStdoutSink(w io.Writer) Sink {
	return sink.NewStdout(w)
}

// NewWebhookSink creates a webhook POST sink with retry.
func NewWebhookSink(url string, logger *slog.Logger) Sink {
	return sink.NewWebhook(url, sink.WithWebhookLogger(logger))
}

// NewCallbackSink creates an in-process callback sink for embedders
// running domalign inside their own binary. No serialisation involved.
func NewCallbackSink(onPlacement PlacementFunc, onSummary SummaryFunc) Sink {
	return sink.NewCallback(onPlacement, onSummary)
}
