package domalign

import (
	"math"

	"github.com/hazyhaar/domalign/position"
)

// PreviewRequest carries everything the pure calculator needs: two
// geometry snapshots and the textual alignment parameters. It is the
// browserless entry point used by the HTTP API and MCP tools.
type PreviewRequest struct {
	Mover      position.Rect `json:"mover"`
	Target     position.Rect `json:"target"`
	Position   string        `json:"position"`
	OffsetX    float64       `json:"offset_x"`
	OffsetY    float64       `json:"offset_y"`
	MarginLeft float64       `json:"margin_left"`
	MarginTop  float64       `json:"margin_top"`
}

// PreviewResult is the computed placement plus the codes it was derived
// from, so callers can see how their position string was interpreted.
type PreviewResult struct {
	Left       float64 `json:"left"`
	Top        float64 `json:"top"`
	MoverCode  string  `json:"mover_code"`
	TargetCode string  `json:"target_code"`
}

// Preview resolves and computes without touching a browser. Offsets are
// truncated toward zero here because preview requests arrive from textual
// surfaces; programmatic callers wanting fractional offsets use
// position.Compute directly.
func Preview(req PreviewRequest) PreviewResult {
	moverCode, targetCode := position.Resolve(req.Position)
	res := position.Compute(req.Mover, req.Target, moverCode, targetCode,
		math.Trunc(req.OffsetX), math.Trunc(req.OffsetY),
		req.MarginLeft, req.MarginTop)
	return PreviewResult{
		Left:       res.Left,
		Top:        res.Top,
		MoverCode:  string(moverCode),
		TargetCode: string(targetCode),
	}
}

// ResolveCode expands a raw position string and classifies both codes.
type CodeClasses struct {
	MoverCode        string `json:"mover_code"`
	MoverHorizontal  string `json:"mover_horizontal"`
	MoverVertical    string `json:"mover_vertical"`
	TargetCode       string `json:"target_code"`
	TargetHorizontal string `json:"target_horizontal"`
	TargetVertical   string `json:"target_vertical"`
}

// ResolveCode is the introspection behind the resolve API/tool: it shows
// how a position string expands and classifies, without computing anything.
func ResolveCode(raw string) CodeClasses {
	m, t := position.Resolve(raw)
	return CodeClasses{
		MoverCode:        string(m),
		MoverHorizontal:  m.Horizontal().String(),
		MoverVertical:    m.Vertical().String(),
		TargetCode:       string(t),
		TargetHorizontal: t.Horizontal().String(),
		TargetVertical:   t.Vertical().String(),
	}
}
