// Package domalign positions elements inside a live Chrome page: it
// computes the absolute coordinates that pin one element ("mover") against
// another ("target") from a compact position code, then writes them back
// through CDP. The pure computation lives in the position package; this
// package orchestrates the browser, geometry snapshots, style writes,
// report sinks, and the placement journal.
//
// domalign is the write-side sibling of domwatch: where domwatch observes
// a DOM, domalign arranges one.
package domalign

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/domalign/internal/browser"
	"github.com/hazyhaar/domalign/internal/config"
	"github.com/hazyhaar/domalign/internal/geometry"
	"github.com/hazyhaar/domalign/internal/idgen"
	"github.com/hazyhaar/domalign/internal/sink"
	"github.com/hazyhaar/domalign/internal/style"
	"github.com/hazyhaar/domalign/journal"
	"github.com/hazyhaar/domalign/position"
	"github.com/hazyhaar/domalign/report"
)

// AlignSpec is one fully resolved alignment instruction: a batch of movers
// against a single target element.
type AlignSpec struct {
	Target         string   // CSS selector of the target element
	Movers         []string // CSS selectors, aligned in order
	Position       string   // 0-4 letter code; invalid degrades to center
	OffsetX        float64
	OffsetY        float64
	ReparentToRoot bool
}

// Aligner is the top-level orchestrator. It manages the browser, applies
// alignment specs to pages, and fans placement reports out to sinks.
// Create one per domalign instance.
type Aligner struct {
	cfg    *config.Config
	mgr    *browser.Manager
	sinkR  *sink.Router
	jrnl   *journal.Journal
	newID  idgen.Generator
	logger *slog.Logger
}

// New creates an Aligner from configuration.
func New(cfg *Config, logger *slog.Logger, sinks ...Sink) *Aligner {
	if logger == nil {
		logger = slog.Default()
	}

	mode := browser.ModeHeadless
	if cfg.Browser.Mode == "headful" {
		mode = browser.ModeHeadful
	}

	mgr := browser.NewManager(browser.Config{
		RemoteURL:       cfg.Browser.Remote,
		MemoryLimit:     cfg.Browser.MemoryLimit,
		RecycleInterval: cfg.Browser.RecycleInterval,
		BlockResources:  cfg.Browser.BlockResources,
		Mode:            mode,
		XvfbDisplay:     cfg.Browser.XvfbDisplay,
		Logger:          logger,
	})

	return &Aligner{
		cfg:    cfg,
		mgr:    mgr,
		sinkR:  sink.NewRouter(logger, sinks...),
		newID:  idgen.Prefixed("plc_", idgen.UUIDv7()),
		logger: logger,
	}
}

// Start launches the browser and opens the journal if one is configured.
func (a *Aligner) Start(ctx context.Context) error {
	if _, err := a.mgr.Start(ctx); err != nil {
		return fmt.Errorf("domalign: start browser: %w", err)
	}

	if a.cfg.Journal.Path != "" {
		j, err := journal.Open(a.cfg.Journal.Path,
			journal.WithLogger(a.logger),
			journal.WithRetention(a.cfg.Journal.RetentionDays))
		if err != nil {
			return fmt.Errorf("domalign: open journal: %w", err)
		}
		a.jrnl = j
	}

	return nil
}

// Stop shuts down the journal, sinks, and browser.
func (a *Aligner) Stop() {
	if a.jrnl != nil {
		a.jrnl.Close()
		a.jrnl = nil
	}
	a.sinkR.Close()
	a.mgr.Close()
}

// Journal exposes the placement journal, nil when not configured.
func (a *Aligner) Journal() *journal.Journal { return a.jrnl }

// RunAll opens each configured page once and applies its rules.
func (a *Aligner) RunAll(ctx context.Context) error {
	var firstErr error
	for _, page := range a.cfg.Pages {
		if _, err := a.AlignPage(ctx, page); err != nil {
			a.logger.Error("domalign: page run failed",
				"page_id", page.ID, "url", page.URL, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

// AlignPage opens a tab for the page, applies every rule, and emits one
// run summary. Rule failures are counted, logged, and do not abort the
// remaining rules.
func (a *Aligner) AlignPage(ctx context.Context, page PageConfig) (report.RunSummary, error) {
	start := time.Now()

	tab, err := browser.OpenTab(ctx, a.mgr, page.URL, page.ID)
	if err != nil {
		return report.RunSummary{}, fmt.Errorf("domalign: open tab: %w", err)
	}
	defer tab.Close()

	sum := report.RunSummary{PageID: page.ID, PageURL: page.URL}
	for _, rule := range page.Rules {
		placements, err := a.Align(ctx, tab, AlignSpec{
			Target:         rule.Target,
			Movers:         rule.Movers,
			Position:       rule.Position,
			OffsetX:        rule.OffsetX,
			OffsetY:        rule.OffsetY,
			ReparentToRoot: rule.ReparentToRoot,
		})
		sum.Applied += len(placements)
		if err != nil {
			sum.Failed++
			a.logger.Error("domalign: rule failed",
				"page_id", page.ID, "target", rule.Target, "error", err)
		}
	}

	sum.Duration = time.Since(start)
	sum.FinishedAt = time.Now()

	if err := a.sinkR.SendSummary(ctx, sum); err != nil {
		a.logger.Warn("domalign: send summary failed", "error", err)
	}

	a.logger.Info("domalign: page aligned",
		"page_id", page.ID, "applied", sum.Applied, "failed", sum.Failed,
		"duration", sum.Duration)
	return sum, nil
}

// Align applies one spec to an open tab. The target's geometry is captured
// exactly once and shared by every mover in the batch: moving one mover
// must not shift where the next one lands, even if the moves cause layout
// in a shared ancestor.
//
// A mover whose element cannot be found or measured is skipped with a log
// entry; the error returned is the first one encountered. An invalid
// position string is not an error; it degrades to center alignment.
func (a *Aligner) Align(ctx context.Context, tab *browser.Tab, spec AlignSpec) ([]report.Placement, error) {
	targetEl, err := tab.Element(ctx, spec.Target)
	if err != nil {
		return nil, err
	}

	if err := tab.SettleLayout(ctx); err != nil {
		a.logger.Warn("domalign: settle layout failed", "error", err)
	}

	targetSnap, err := geometry.Capture(ctx, targetEl)
	if err != nil {
		return nil, err
	}

	moverCode, targetCode := position.Resolve(spec.Position)

	var (
		placements []report.Placement
		firstErr   error
	)
	for _, sel := range spec.Movers {
		p, err := a.alignOne(ctx, tab, sel, spec, targetSnap.Rect, moverCode, targetCode)
		if err != nil {
			a.logger.Error("domalign: mover failed",
				"page_id", tab.PageID, "mover", sel, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		placements = append(placements, p)
	}
	return placements, firstErr
}

func (a *Aligner) alignOne(ctx context.Context, tab *browser.Tab, sel string, spec AlignSpec, targetRect position.Rect, moverCode, targetCode position.Code) (report.Placement, error) {
	el, err := tab.Element(ctx, sel)
	if err != nil {
		return report.Placement{}, err
	}

	// Reparent before measuring: moving the node can change its own box.
	if spec.ReparentToRoot {
		if err := style.ReparentToRoot(ctx, el); err != nil {
			return report.Placement{}, err
		}
	}

	snap, err := geometry.Capture(ctx, el)
	if err != nil {
		return report.Placement{}, err
	}

	res := position.Compute(snap.Rect, targetRect, moverCode, targetCode,
		spec.OffsetX, spec.OffsetY, snap.MarginLeft, snap.MarginTop)

	if err := style.Apply(ctx, el, res.Left, res.Top); err != nil {
		return report.Placement{}, err
	}

	p := report.Placement{
		ID:             a.newID(),
		PageID:         tab.PageID,
		PageURL:        tab.PageURL,
		TargetSelector: spec.Target,
		MoverSelector:  sel,
		Position:       spec.Position,
		MoverCode:      string(moverCode),
		TargetCode:     string(targetCode),
		Left:           res.Left,
		Top:            res.Top,
		OffsetX:        spec.OffsetX,
		OffsetY:        spec.OffsetY,
		Reparented:     spec.ReparentToRoot,
		AppliedAt:      time.Now(),
	}

	if a.jrnl != nil {
		a.jrnl.Record(p)
	}
	if err := a.sinkR.Send(ctx, p); err != nil {
		a.logger.Warn("domalign: send placement failed", "error", err)
	}

	a.logger.Info("domalign: placed",
		"page_id", tab.PageID, "mover", sel,
		"left", res.Left, "top", res.Top, "code", spec.Position)
	return p, nil
}
