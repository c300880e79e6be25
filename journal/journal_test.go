package journal

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domalign/internal/idgen"
	"github.com/hazyhaar/domalign/internal/sqlite"
	"github.com/hazyhaar/domalign/report"
)

func newTestJournal(t *testing.T) *Journal {
	t.Helper()
	db := sqlite.OpenMemory(t, Schema)
	j := New(db, 10)
	t.Cleanup(func() { j.Close() })
	return j
}

func placement(page, mover string, at time.Time) report.Placement {
	return report.Placement{
		PageID:         page,
		PageURL:        "https://example.com",
		TargetSelector: "#anchor",
		MoverSelector:  mover,
		Position:       "tl",
		MoverCode:      "tl",
		TargetCode:     "tl",
		Left:           100,
		Top:            200,
		AppliedAt:      at,
	}
}

func TestJournal_RecordSyncAndQuery(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	if err := j.RecordSync(ctx, placement("p1", "#a", time.Now())); err != nil {
		t.Fatalf("RecordSync: %v", err)
	}
	if err := j.RecordSync(ctx, placement("p2", "#b", time.Now())); err != nil {
		t.Fatalf("RecordSync: %v", err)
	}

	got, err := j.Query(ctx, Filter{PageID: "p1"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("placements for p1: got %d, want 1", len(got))
	}
	p := got[0]
	if p.MoverSelector != "#a" || p.Left != 100 || p.Top != 200 {
		t.Errorf("placement: got %+v", p)
	}
	if p.ID == "" {
		t.Error("placement ID must be filled")
	}
}

func TestJournal_AsyncDrainOnClose(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)
	j := New(db, 10)

	for i := 0; i < 5; i++ {
		j.Record(placement("p1", "#a", time.Now()))
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM placements").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 5 {
		t.Errorf("rows after drain: got %d, want 5", n)
	}
}

func TestJournal_QueryTimeFilter(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	old := time.Now().Add(-48 * time.Hour)
	recent := time.Now()
	j.RecordSync(ctx, placement("p1", "#old", old))
	j.RecordSync(ctx, placement("p1", "#new", recent))

	got, err := j.Query(ctx, Filter{Since: time.Now().Add(-time.Hour)})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].MoverSelector != "#new" {
		t.Errorf("time filter: got %+v", got)
	}
}

func TestJournal_Cleanup(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	j.RecordSync(ctx, placement("p1", "#old", time.Now().AddDate(0, 0, -40)))
	j.RecordSync(ctx, placement("p1", "#new", time.Now()))

	deleted, err := j.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted: got %d, want 1", deleted)
	}

	remaining, err := j.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(remaining) != 1 || remaining[0].MoverSelector != "#new" {
		t.Errorf("remaining: got %+v", remaining)
	}
}

// A journal opened with retention purges rows older than the window
// before accepting new writes, so a configured retention can never leave
// the database growing unbounded.
func TestJournal_RetentionAppliedOnOpen(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)
	ctx := context.Background()

	seed := New(db, 10)
	seed.RecordSync(ctx, placement("p1", "#old", time.Now().AddDate(0, 0, -45)))
	seed.RecordSync(ctx, placement("p1", "#new", time.Now()))
	if err := seed.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j := New(db, 10, WithRetention(30))
	t.Cleanup(func() { j.Close() })

	got, err := j.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || got[0].MoverSelector != "#new" {
		t.Errorf("after retention 30d: got %+v, want only #new", got)
	}
}

func TestJournal_RetentionZeroKeepsEverything(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)
	ctx := context.Background()

	seed := New(db, 10)
	seed.RecordSync(ctx, placement("p1", "#ancient", time.Now().AddDate(-1, 0, 0)))
	seed.Close()

	j := New(db, 10)
	t.Cleanup(func() { j.Close() })

	got, err := j.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("without retention: got %d rows, want 1", len(got))
	}
}

// With the buffer full, Record must insert synchronously through the
// journal's own logger rather than dropping the placement.
func TestJournal_BufferFullSyncFallback(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	// No flush goroutine and an unbuffered channel: the async path can
	// never accept, forcing the fallback.
	j := &Journal{
		db:     db,
		newID:  idgen.Prefixed("plc_", idgen.UUIDv7()),
		logger: logger,
		ch:     make(chan report.Placement),
	}
	j.Record(placement("p1", "#a", time.Now()))

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM placements").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Errorf("rows after fallback: got %d, want 1", n)
	}
	if !strings.Contains(buf.String(), "buffer full") {
		t.Errorf("fallback warning missing from log: %q", buf.String())
	}
}

func TestJournal_ReparentedRoundTrip(t *testing.T) {
	j := newTestJournal(t)
	ctx := context.Background()

	p := placement("p1", "#a", time.Now())
	p.Reparented = true
	j.RecordSync(ctx, p)

	got, err := j.Query(ctx, Filter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 || !got[0].Reparented {
		t.Errorf("reparented flag lost: got %+v", got)
	}
}
