// Package style is the output side of domalign's host boundary: it writes
// computed coordinates back to the page. It never reads geometry: by the
// time Apply runs, every snapshot for the batch has already been taken.
package style

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
)

// applyJS positions the element absolutely relative to the document.
// A statically positioned element is switched to absolute; elements that
// are already absolute or fixed keep their scheme.
const applyJS = `(left, top) => {
	const pos = getComputedStyle(this).position;
	if (pos !== 'absolute' && pos !== 'fixed') {
		this.style.position = 'absolute';
	}
	this.style.left = left + 'px';
	this.style.top = top + 'px';
}`

// Apply writes left/top pixel coordinates to the element and forces an
// absolute positioning scheme if needed.
func Apply(ctx context.Context, el *rod.Element, left, top float64) error {
	if _, err := el.Context(ctx).Eval(applyJS, left, top); err != nil {
		return fmt.Errorf("style: apply position: %w", err)
	}
	return nil
}

// ReparentToRoot moves the element to document.body so its absolute
// coordinates escape any positioned ancestor. Must run before the mover's
// snapshot is taken: reparenting can change the element's own box.
func ReparentToRoot(ctx context.Context, el *rod.Element) error {
	if _, err := el.Context(ctx).Eval(`() => { document.body.appendChild(this); }`); err != nil {
		return fmt.Errorf("style: reparent to root: %w", err)
	}
	return nil
}
