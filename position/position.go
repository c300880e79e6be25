// Package position computes where a rectangular element must be placed so
// that a chosen point on it coincides with a chosen point on another
// rectangle. It is the pure core of domalign, with no DOM access and no
// I/O: callers capture geometry snapshots first and apply the result
// afterwards.
//
// A position string of up to four letters from {t, b, c, m, l, r} selects
// one anchor point per rectangle ("tl" = top-left corner, "c" = center).
// Resolve expands the string into two 2-letter codes, Compute turns those
// codes plus two rectangle snapshots into absolute left/top coordinates.
package position

// Rect is an immutable geometry snapshot of one element: absolute top-left
// position and outer dimensions (border and padding included, margin
// excluded), in document-relative pixels. Zero-size rects are valid.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// AxisClass places a point along one axis of a rectangle.
type AxisClass int

const (
	Start  AxisClass = iota // left edge / top edge
	Center                  // midpoint
	End                     // right edge / bottom edge
)

func (c AxisClass) String() string {
	switch c {
	case Center:
		return "center"
	case End:
		return "end"
	default:
		return "start"
	}
}

// Code is a normalized 2-letter anchor descriptor. Its two letters are an
// unordered pair: "tl" and "lt" name the same point. A pair drawn from a
// single axis ("tt", "lr") leaves the other axis at its center.
type Code string

// DefaultCode is the fallback for empty or malformed position strings:
// full center against full center.
const DefaultCode Code = "cc"

// Horizontal classifies the code on the x axis. An l/r pair cancels to
// center, as does the absence of any horizontal letter.
func (c Code) Horizontal() AxisClass {
	hasL := c.contains('l')
	hasR := c.contains('r')
	switch {
	case hasL == hasR:
		return Center
	case hasR:
		return End
	default:
		return Start
	}
}

// Vertical classifies the code on the y axis, mirroring Horizontal with
// t (start) and b (end).
func (c Code) Vertical() AxisClass {
	hasT := c.contains('t')
	hasB := c.contains('b')
	switch {
	case hasT == hasB:
		return Center
	case hasB:
		return End
	default:
		return Start
	}
}

func (c Code) contains(ch byte) bool {
	for i := 0; i < len(c); i++ {
		if c[i] == ch {
			return true
		}
	}
	return false
}

// Result holds the absolute coordinates to apply to the mover's top-left
// corner, already net of the mover's own margins.
type Result struct {
	Left float64 `json:"left"`
	Top  float64 `json:"top"`
}
