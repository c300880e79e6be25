package domalign

import (
	"testing"

	"github.com/hazyhaar/domalign/position"
)

func TestPreview_SpecScenario(t *testing.T) {
	got := Preview(PreviewRequest{
		Mover:    position.Rect{W: 40, H: 20},
		Target:   position.Rect{X: 100, Y: 200, W: 80, H: 60},
		Position: "tlr",
	})
	if got.Left != 180 || got.Top != 230 {
		t.Errorf("tlr: got {%v %v}, want {180 230}", got.Left, got.Top)
	}
	if got.MoverCode != "tl" || got.TargetCode != "rr" {
		t.Errorf("codes: got (%q, %q), want (tl, rr)", got.MoverCode, got.TargetCode)
	}
}

// Preview sits on a textual boundary, so fractional offsets truncate
// toward zero before reaching the calculator.
func TestPreview_OffsetTruncation(t *testing.T) {
	base := Preview(PreviewRequest{
		Mover:  position.Rect{W: 10, H: 10},
		Target: position.Rect{X: 0, Y: 0, W: 10, H: 10},
	})
	shifted := Preview(PreviewRequest{
		Mover:   position.Rect{W: 10, H: 10},
		Target:  position.Rect{X: 0, Y: 0, W: 10, H: 10},
		OffsetX: 5.9,
		OffsetY: -3.7,
	})
	if shifted.Left != base.Left+5 {
		t.Errorf("offset 5.9: got left %v, want %v", shifted.Left, base.Left+5)
	}
	if shifted.Top != base.Top-3 {
		t.Errorf("offset -3.7: got top %v, want %v", shifted.Top, base.Top-3)
	}
}

func TestResolveCode(t *testing.T) {
	got := ResolveCode("tlr")
	want := CodeClasses{
		MoverCode: "tl", MoverHorizontal: "start", MoverVertical: "start",
		TargetCode: "rr", TargetHorizontal: "end", TargetVertical: "center",
	}
	if got != want {
		t.Errorf("ResolveCode(tlr): got %+v, want %+v", got, want)
	}
}

func TestResolveCode_InvalidFallsBack(t *testing.T) {
	got := ResolveCode("bogus!")
	if got.MoverCode != "cc" || got.TargetCode != "cc" {
		t.Errorf("invalid code: got %+v, want center fallback", got)
	}
}
