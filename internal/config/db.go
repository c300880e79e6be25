package config

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
)

// Schema for the align_rules table. One row per rule; rows sharing a
// page_id are applied to the same tab in insertion order.
const Schema = `
CREATE TABLE IF NOT EXISTS align_rules (
	rule_id          TEXT PRIMARY KEY,
	page_id          TEXT NOT NULL,
	url              TEXT NOT NULL,
	target_selector  TEXT NOT NULL,
	mover_selectors  TEXT DEFAULT '[]',
	position         TEXT DEFAULT 'c',
	offset_x         INTEGER DEFAULT 0,
	offset_y         INTEGER DEFAULT 0,
	reparent_to_root INTEGER DEFAULT 0,
	status           TEXT DEFAULT 'active',
	updated_at       INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_align_rules_page ON align_rules(page_id);
`

// LoadPages reads all active rules and groups them into page configs.
func LoadPages(ctx context.Context, db *sql.DB) ([]PageConfig, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT page_id, url, target_selector, mover_selectors,
		       position, offset_x, offset_y, reparent_to_root
		FROM align_rules
		WHERE status = 'active'
		ORDER BY page_id, rowid
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		pages   []PageConfig
		current *PageConfig
	)
	for rows.Next() {
		var (
			pageID, url, target, moversJSON, pos string
			offX, offY                           float64
			reparent                             int
		)
		if err := rows.Scan(&pageID, &url, &target, &moversJSON,
			&pos, &offX, &offY, &reparent); err != nil {
			return nil, err
		}

		var movers []string
		json.Unmarshal([]byte(moversJSON), &movers)

		rule := Rule{
			Target:         target,
			Movers:         movers,
			Position:       pos,
			OffsetX:        math.Trunc(offX),
			OffsetY:        math.Trunc(offY),
			ReparentToRoot: reparent != 0,
		}

		if current == nil || current.ID != pageID {
			pages = append(pages, PageConfig{ID: pageID, URL: url})
			current = &pages[len(pages)-1]
		}
		current.Rules = append(current.Rules, rule)
	}
	return pages, rows.Err()
}
