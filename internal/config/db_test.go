package config

import (
	"context"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hazyhaar/domalign/internal/sqlite"
)

func TestLoadPages(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)
	now := time.Now().Unix()

	insert := `INSERT INTO align_rules
		(rule_id, page_id, url, target_selector, mover_selectors,
		 position, offset_x, offset_y, reparent_to_root, status, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`

	rows := [][]any{
		{"r1", "p1", "https://a.example", "#anchor", `["#m1","#m2"]`, "tl", 5, 0, 0, "active", now},
		{"r2", "p1", "https://a.example", "#footer", `["#m3"]`, "br", 0, -2, 1, "active", now},
		{"r3", "p2", "https://b.example", "#hero", `["#m4"]`, "c", 0, 0, 0, "active", now},
		{"r4", "p2", "https://b.example", "#hero", `["#m5"]`, "c", 0, 0, 0, "disabled", now},
	}
	for _, r := range rows {
		if _, err := db.Exec(insert, r...); err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	pages, err := LoadPages(context.Background(), db)
	if err != nil {
		t.Fatalf("LoadPages: %v", err)
	}

	if len(pages) != 2 {
		t.Fatalf("pages: got %d, want 2", len(pages))
	}
	if pages[0].ID != "p1" || len(pages[0].Rules) != 2 {
		t.Errorf("page p1: got %+v", pages[0])
	}
	if pages[1].ID != "p2" || len(pages[1].Rules) != 1 {
		t.Errorf("page p2: disabled rule must be excluded, got %+v", pages[1])
	}

	r2 := pages[0].Rules[1]
	if r2.Target != "#footer" || !r2.ReparentToRoot || r2.OffsetY != -2 {
		t.Errorf("rule r2: got %+v", r2)
	}
	if len(r2.Movers) != 1 || r2.Movers[0] != "#m3" {
		t.Errorf("rule r2 movers: got %v", r2.Movers)
	}
}

func TestLoadPages_Empty(t *testing.T) {
	db := sqlite.OpenMemory(t, Schema)
	pages, err := LoadPages(context.Background(), db)
	if err != nil {
		t.Fatalf("LoadPages: %v", err)
	}
	if len(pages) != 0 {
		t.Errorf("pages: got %d, want 0", len(pages))
	}
}
