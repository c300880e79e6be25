package position

import "testing"

var (
	mover40x20 = Rect{X: 0, Y: 0, W: 40, H: 20}
	target     = Rect{X: 100, Y: 200, W: 80, H: 60}
)

func TestCompute_TopLeft(t *testing.T) {
	got := Compute(mover40x20, target, "tl", "tl", 0, 0, 0, 0)
	if got.Left != 100 || got.Top != 200 {
		t.Errorf("tl/tl: got {%v %v}, want {100 200}", got.Left, got.Top)
	}
}

// "tlr": mover top-left against the midpoint of the target's right edge.
func TestCompute_TopLeftToRightMid(t *testing.T) {
	mover, targetCode := Resolve("tlr")
	got := Compute(mover40x20, target, mover, targetCode, 0, 0, 0, 0)
	if got.Left != 180 || got.Top != 230 {
		t.Errorf("tlr: got {%v %v}, want {180 230}", got.Left, got.Top)
	}
}

func TestCompute_CenterEquivalence(t *testing.T) {
	want := Result{
		Left: target.X + target.W/2 - mover40x20.W/2,
		Top:  target.Y + target.H/2 - mover40x20.H/2,
	}
	for _, raw := range []string{"", "c", "cc", "cccc", "xyz123"} {
		m, tg := Resolve(raw)
		if got := Compute(mover40x20, target, m, tg, 0, 0, 0, 0); got != want {
			t.Errorf("Resolve(%q): got %+v, want %+v", raw, got, want)
		}
	}
}

func TestCompute_OffsetLinearity(t *testing.T) {
	base := Compute(mover40x20, target, "tl", "br", 0, 0, 0, 0)
	shifted := Compute(mover40x20, target, "tl", "br", 5, 5, 0, 0)
	if shifted.Left != base.Left+5 || shifted.Top != base.Top+5 {
		t.Errorf("offset (5,5): got %+v, base %+v", shifted, base)
	}

	neg := Compute(mover40x20, target, "tl", "br", -12, -7, 0, 0)
	if neg.Left != base.Left-12 || neg.Top != base.Top-7 {
		t.Errorf("offset (-12,-7): got %+v, base %+v", neg, base)
	}
}

func TestCompute_MarginSubtraction(t *testing.T) {
	base := Compute(mover40x20, target, "tl", "tl", 0, 0, 0, 0)
	withMargin := Compute(mover40x20, target, "tl", "tl", 0, 0, 10, 4)
	if withMargin.Left != base.Left-10 {
		t.Errorf("left margin 10: got left %v, want %v", withMargin.Left, base.Left-10)
	}
	if withMargin.Top != base.Top-4 {
		t.Errorf("top margin 4: got top %v, want %v", withMargin.Top, base.Top-4)
	}
}

func TestCompute_AllCorners(t *testing.T) {
	tests := []struct {
		code      string
		left, top float64
	}{
		{"tl", 100, 200},                 // corners coincide
		{"tr", 100 + 80 - 40, 200},       // both top-right points
		{"bl", 100, 200 + 60 - 20},       // both bottom-left points
		{"br", 100 + 80 - 40, 200 + 60 - 20},
	}
	for _, tc := range tests {
		m, tg := Resolve(tc.code)
		got := Compute(mover40x20, target, m, tg, 0, 0, 0, 0)
		if got.Left != tc.left || got.Top != tc.top {
			t.Errorf("%q: got {%v %v}, want {%v %v}",
				tc.code, got.Left, got.Top, tc.left, tc.top)
		}
	}
}

func TestCompute_ZeroSizeRects(t *testing.T) {
	point := Rect{X: 50, Y: 60}
	got := Compute(point, point, "cc", "cc", 0, 0, 0, 0)
	if got.Left != 50 || got.Top != 60 {
		t.Errorf("zero-size rects: got {%v %v}, want {50 60}", got.Left, got.Top)
	}
}

// Fractional geometry passes through untouched: rounding belongs to callers.
func TestCompute_FractionalGeometry(t *testing.T) {
	m := Rect{W: 33, H: 11}
	tg := Rect{X: 10.5, Y: 20.25, W: 7, H: 5}
	got := Compute(m, tg, "cc", "cc", 0, 0, 0, 0)
	wantLeft := 10.5 + 3.5 - 16.5
	wantTop := 20.25 + 2.5 - 5.5
	if got.Left != wantLeft || got.Top != wantTop {
		t.Errorf("fractional: got {%v %v}, want {%v %v}", got.Left, got.Top, wantLeft, wantTop)
	}
}
