package browser

import (
	"log/slog"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// applyResourceBlocking intercepts requests and blocks the configured
// resource types. Stylesheets are exempt regardless of configuration:
// blocking them would change the layout domalign is about to measure.
func applyResourceBlocking(page *rod.Page, types []string, log *slog.Logger) error {
	blockSet := make(map[string]bool, len(types))
	for _, t := range types {
		name := strings.ToLower(t)
		if name == "stylesheets" || name == "stylesheet" {
			log.Warn("browser: refusing to block stylesheets, geometry depends on them")
			continue
		}
		blockSet[name] = true
	}
	if len(blockSet) == 0 {
		return nil
	}

	router := page.HijackRequests()

	router.MustAdd("*", func(ctx *rod.Hijack) {
		if shouldBlock(blockSet, string(ctx.Request.Type())) {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	go router.Run()

	return nil
}

func shouldBlock(blockSet map[string]bool, resType string) bool {
	switch strings.ToLower(resType) {
	case "image":
		return blockSet["images"]
	case "font":
		return blockSet["fonts"]
	case "media":
		return blockSet["media"]
	}
	return blockSet[strings.ToLower(resType)]
}
