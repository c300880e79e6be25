package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/stealth"
)

// Tab wraps a Rod page prepared for alignment work: stealth applied,
// resources optionally blocked, layout settled after navigation.
type Tab struct {
	Page    *rod.Page
	PageURL string
	PageID  string
}

// OpenTab creates a new tab, navigates to the URL, and waits for the page
// to load so element geometry is meaningful before the first measurement.
func OpenTab(ctx context.Context, mgr *Manager, pageURL, pageID string) (*Tab, error) {
	b := mgr.Browser()
	if b == nil {
		return nil, fmt.Errorf("browser: no active browser")
	}

	page, err := stealth.Page(b)
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if len(mgr.cfg.BlockResources) > 0 {
		if err := applyResourceBlocking(page, mgr.cfg.BlockResources, mgr.cfg.Logger); err != nil {
			mgr.cfg.Logger.Warn("browser: resource blocking failed", "error", err)
		}
	}

	navCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}

	if err := page.Context(navCtx).WaitLoad(); err != nil {
		mgr.cfg.Logger.Warn("browser: wait load timeout", "url", pageURL, "error", err)
	}

	return &Tab{
		Page:    page,
		PageURL: pageURL,
		PageID:  pageID,
	}, nil
}

// Element resolves a CSS selector to a Rod element handle. A selector that
// matches nothing is a caller-side contract violation, reported as an error
// rather than silently skipped.
func (t *Tab) Element(ctx context.Context, selector string) (*rod.Element, error) {
	el, err := t.Page.Context(ctx).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("browser: element %q: %w", selector, err)
	}
	return el, nil
}

// SettleLayout forces a synchronous layout pass so geometry reads that
// follow observe a consistent frame.
func (t *Tab) SettleLayout(ctx context.Context) error {
	_, err := t.Page.Context(ctx).Eval(`() => {
		document.documentElement.offsetHeight;
	}`)
	return err
}

// Close closes the tab.
func (t *Tab) Close() error {
	if t.Page != nil {
		return t.Page.Close()
	}
	return nil
}
