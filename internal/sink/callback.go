package sink

import (
	"context"

	"github.com/hazyhaar/domalign/report"
)

// PlacementFunc is called for each placement (in-process, zero serialisation).
type PlacementFunc func(ctx context.Context, p report.Placement) error

// SummaryFunc is called for each run summary.
type SummaryFunc func(ctx context.Context, s report.RunSummary) error

// Callback delivers reports via Go function calls, for embedders that run
// domalign inside their own binary and want the records without a
// serialisation round-trip.
type Callback struct {
	onPlacement PlacementFunc
	onSummary   SummaryFunc
}

// NewCallback creates a Callback sink. Either handler may be nil.
func NewCallback(onPlacement PlacementFunc, onSummary SummaryFunc) *Callback {
	return &Callback{onPlacement: onPlacement, onSummary: onSummary}
}

func (c *Callback) Send(ctx context.Context, p report.Placement) error {
	if c.onPlacement != nil {
		return c.onPlacement(ctx, p)
	}
	return nil
}

func (c *Callback) SendSummary(ctx context.Context, s report.RunSummary) error {
	if c.onSummary != nil {
		return c.onSummary(ctx, s)
	}
	return nil
}

func (c *Callback) Close() error { return nil }
