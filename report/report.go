// Package report defines the records domalign emits after applying
// alignments: one Placement per repositioned element and one RunSummary
// per page run. Consumers receive them through sinks (stdout, webhook,
// in-process callback) or read them back from the journal.
package report

import "time"

// Placement records one applied alignment.
type Placement struct {
	ID             string `json:"id"`
	PageID         string `json:"page_id"`
	PageURL        string `json:"page_url"`
	TargetSelector string `json:"target_selector"`
	MoverSelector  string `json:"mover_selector"`

	Position   string `json:"position"`    // raw position string as supplied
	MoverCode  string `json:"mover_code"`  // resolved 2-letter code
	TargetCode string `json:"target_code"` // resolved 2-letter code

	Left    float64 `json:"left"`
	Top     float64 `json:"top"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`

	Reparented bool      `json:"reparented"`
	AppliedAt  time.Time `json:"applied_at"`
}

// RunSummary aggregates one page run: how many movers were placed and how
// many rules failed (missing elements, page errors).
type RunSummary struct {
	PageID     string        `json:"page_id"`
	PageURL    string        `json:"page_url"`
	Applied    int           `json:"applied"`
	Failed     int           `json:"failed"`
	Duration   time.Duration `json:"duration_ns"`
	FinishedAt time.Time     `json:"finished_at"`
}
