package domalign

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domalign/internal/browser"
)

// RegisterMCP registers domalign tools on an MCP server:
// domalign_resolve (pure), domalign_preview (pure), domalign_apply (live).
func (a *Aligner) RegisterMCP(srv *mcp.Server) {
	a.registerResolveTool(srv)
	a.registerPreviewTool(srv)
	a.registerApplyTool(srv)
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func addTool[T any](srv *mcp.Server, tool *mcp.Tool, run func(ctx context.Context, req *T) (any, error)) {
	srv.AddTool(tool, func(ctx context.Context, call *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req T
		if len(call.Params.Arguments) > 0 {
			if err := json.Unmarshal(call.Params.Arguments, &req); err != nil {
				var res mcp.CallToolResult
				res.SetError(fmt.Errorf("invalid arguments: %w", err))
				return &res, nil
			}
		}

		resp, err := run(ctx, &req)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(err)
			return &res, nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			var res mcp.CallToolResult
			res.SetError(fmt.Errorf("marshal: %w", err))
			return &res, nil
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		}, nil
	})
}

// --- resolve ---

type resolveReq struct {
	Position string `json:"position"`
}

func (a *Aligner) registerResolveTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domalign_resolve",
		Description: "Expand a 0-4 letter position code (letters t,b,c,m,l,r) into mover/target anchor codes and per-axis classes. Invalid codes fall back to center.",
		InputSchema: inputSchema(map[string]any{
			"position": map[string]any{"type": "string", "description": "Position code, e.g. \"tlr\""},
		}, nil),
	}

	addTool(srv, tool, func(_ context.Context, req *resolveReq) (any, error) {
		return ResolveCode(req.Position), nil
	})
}

// --- preview ---

func (a *Aligner) registerPreviewTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domalign_preview",
		Description: "Compute mover coordinates from two rectangles and a position code, without a browser.",
		InputSchema: inputSchema(map[string]any{
			"mover":       map[string]any{"type": "object", "description": "Mover rect {x,y,w,h}"},
			"target":      map[string]any{"type": "object", "description": "Target rect {x,y,w,h}"},
			"position":    map[string]any{"type": "string"},
			"offset_x":    map[string]any{"type": "number"},
			"offset_y":    map[string]any{"type": "number"},
			"margin_left": map[string]any{"type": "number"},
			"margin_top":  map[string]any{"type": "number"},
		}, []string{"mover", "target"}),
	}

	addTool(srv, tool, func(_ context.Context, req *PreviewRequest) (any, error) {
		return Preview(*req), nil
	})
}

// --- apply ---

type applyReq struct {
	PageID         string   `json:"page_id"`
	URL            string   `json:"url"`
	Target         string   `json:"target"`
	Movers         []string `json:"movers"`
	Position       string   `json:"position"`
	OffsetX        float64  `json:"offset_x"`
	OffsetY        float64  `json:"offset_y"`
	ReparentToRoot bool     `json:"reparent_to_root"`
}

func (a *Aligner) registerApplyTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "domalign_apply",
		Description: "Open a page and align mover elements against a target element, applying the computed coordinates in the live DOM.",
		InputSchema: inputSchema(map[string]any{
			"page_id":          map[string]any{"type": "string"},
			"url":              map[string]any{"type": "string"},
			"target":           map[string]any{"type": "string", "description": "CSS selector of the target element"},
			"movers":           map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
			"position":         map[string]any{"type": "string"},
			"offset_x":         map[string]any{"type": "number"},
			"offset_y":         map[string]any{"type": "number"},
			"reparent_to_root": map[string]any{"type": "boolean"},
		}, []string{"url", "target", "movers"}),
	}

	addTool(srv, tool, func(ctx context.Context, req *applyReq) (any, error) {
		if req.URL == "" || req.Target == "" || len(req.Movers) == 0 {
			return nil, fmt.Errorf("domalign_apply: url, target and movers are required")
		}

		tab, err := browser.OpenTab(ctx, a.mgr, req.URL, req.PageID)
		if err != nil {
			return nil, err
		}
		defer tab.Close()

		placements, err := a.Align(ctx, tab, AlignSpec{
			Target:         req.Target,
			Movers:         req.Movers,
			Position:       req.Position,
			OffsetX:        math.Trunc(req.OffsetX),
			OffsetY:        math.Trunc(req.OffsetY),
			ReparentToRoot: req.ReparentToRoot,
		})
		if err != nil && len(placements) == 0 {
			return nil, err
		}
		return map[string]any{"placements": placements}, nil
	})
}
