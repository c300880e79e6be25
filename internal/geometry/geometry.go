// Package geometry is the input side of domalign's host boundary: it takes
// one immutable geometry snapshot per element from a live Rod page. A
// snapshot is captured before any computation starts and never refreshed
// mid-call, which is what keeps a batch of movers consistent against a
// single target measurement.
package geometry

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-rod/rod"

	"github.com/hazyhaar/domalign/position"
)

// Snapshot is one element's geometry at a single point in time:
// document-relative outer rect plus the margins the rendering engine will
// re-add when the element is positioned.
type Snapshot struct {
	Rect       position.Rect
	MarginLeft float64
	MarginTop  float64
}

// captureJS reads everything in one round-trip so the rect and margins
// come from the same layout frame. Dimensions come from the bounding rect
// (border+padding included, margin excluded, fractional values preserved);
// offsets are document-relative via the window scroll position.
const captureJS = `() => {
	const r = this.getBoundingClientRect();
	const cs = getComputedStyle(this);
	return {
		x:  r.left + window.scrollX,
		y:  r.top + window.scrollY,
		w:  r.width,
		h:  r.height,
		ml: cs.marginLeft,
		mt: cs.marginTop,
	};
}`

// Capture takes a snapshot of one element.
func Capture(ctx context.Context, el *rod.Element) (Snapshot, error) {
	res, err := el.Context(ctx).Eval(captureJS)
	if err != nil {
		return Snapshot{}, fmt.Errorf("geometry: capture: %w", err)
	}

	v := res.Value
	return Snapshot{
		Rect: position.Rect{
			X: v.Get("x").Num(),
			Y: v.Get("y").Num(),
			W: v.Get("w").Num(),
			H: v.Get("h").Num(),
		},
		MarginLeft: ParsePx(v.Get("ml").Str()),
		MarginTop:  ParsePx(v.Get("mt").Str()),
	}, nil
}

// ParsePx converts a CSS length like "10px" or "12.5px" to a float.
// Anything non-numeric ("auto", "", garbage) coerces to 0 so a browser
// quirk can never inject NaN into the calculation.
func ParsePx(s string) float64 {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
