package domalign

import (
	"encoding/json"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hazyhaar/domalign/internal/browser"
	"github.com/hazyhaar/domalign/journal"
)

// Routes returns the HTTP API. Preview and resolve are pure; align drives
// the live browser. An invalid position string is never a client error;
// it degrades to center alignment, like everywhere else in domalign.
func (a *Aligner) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/preview", func(w http.ResponseWriter, req *http.Request) {
			var pr PreviewRequest
			if err := json.NewDecoder(req.Body).Decode(&pr); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			writeJSON(w, http.StatusOK, Preview(pr))
		})

		r.Get("/resolve/{code}", func(w http.ResponseWriter, req *http.Request) {
			writeJSON(w, http.StatusOK, ResolveCode(chi.URLParam(req, "code")))
		})

		r.Post("/align", func(w http.ResponseWriter, req *http.Request) {
			var ar alignRequest
			if err := json.NewDecoder(req.Body).Decode(&ar); err != nil {
				writeError(w, http.StatusBadRequest, "invalid JSON body")
				return
			}
			if ar.URL == "" || ar.Target == "" || len(ar.Movers) == 0 {
				writeError(w, http.StatusBadRequest, "url, target and movers are required")
				return
			}

			ctx := req.Context()
			tab, err := browser.OpenTab(ctx, a.mgr, ar.URL, ar.PageID)
			if err != nil {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			defer tab.Close()

			placements, err := a.Align(ctx, tab, AlignSpec{
				Target:         ar.Target,
				Movers:         ar.Movers,
				Position:       ar.Position,
				OffsetX:        math.Trunc(ar.OffsetX),
				OffsetY:        math.Trunc(ar.OffsetY),
				ReparentToRoot: ar.ReparentToRoot,
			})
			if err != nil && len(placements) == 0 {
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"placements": placements})
		})

		r.Get("/placements", func(w http.ResponseWriter, req *http.Request) {
			if a.jrnl == nil {
				writeError(w, http.StatusNotFound, "journal not configured")
				return
			}
			f := journal.Filter{
				PageID:        req.URL.Query().Get("page_id"),
				MoverSelector: req.URL.Query().Get("mover"),
			}
			if since := req.URL.Query().Get("since"); since != "" {
				t, err := time.Parse(time.RFC3339, since)
				if err != nil {
					writeError(w, http.StatusBadRequest, "since must be RFC3339")
					return
				}
				f.Since = t
			}
			entries, err := a.jrnl.Query(req.Context(), f)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"placements": entries})
		})
	})

	return r
}

type alignRequest struct {
	PageID         string   `json:"page_id"`
	URL            string   `json:"url"`
	Target         string   `json:"target"`
	Movers         []string `json:"movers"`
	Position       string   `json:"position"`
	OffsetX        float64  `json:"offset_x"`
	OffsetY        float64  `json:"offset_y"`
	ReparentToRoot bool     `json:"reparent_to_root"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
