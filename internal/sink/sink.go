// Package sink defines output backends for domalign placement reports.
package sink

import (
	"context"

	"github.com/hazyhaar/domalign/report"
)

// Sink is the output interface. Implementations deliver placements to
// different backends (stdout, webhook, in-process callback).
type Sink interface {
	Send(ctx context.Context, p report.Placement) error
	SendSummary(ctx context.Context, s report.RunSummary) error
	Close() error
}
