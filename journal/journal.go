// Package journal persists applied placements to SQLite. Writes are
// buffered and flushed in batched transactions so journalling never sits
// on the alignment path; a full buffer falls back to a synchronous insert
// rather than dropping the record.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/hazyhaar/domalign/internal/idgen"
	"github.com/hazyhaar/domalign/internal/sqlite"
	"github.com/hazyhaar/domalign/report"
)

// Schema for the placements table.
const Schema = `
CREATE TABLE IF NOT EXISTS placements (
	placement_id    TEXT PRIMARY KEY,
	page_id         TEXT NOT NULL,
	page_url        TEXT NOT NULL,
	target_selector TEXT NOT NULL,
	mover_selector  TEXT NOT NULL,
	position        TEXT NOT NULL,
	mover_code      TEXT NOT NULL,
	target_code     TEXT NOT NULL,
	left_px         REAL NOT NULL,
	top_px          REAL NOT NULL,
	offset_x        REAL NOT NULL,
	offset_y        REAL NOT NULL,
	reparented      INTEGER NOT NULL,
	applied_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_placements_page ON placements(page_id, applied_at);
`

// Journal is an async placement journal.
type Journal struct {
	db            *sql.DB
	owned         bool
	newID         idgen.Generator
	logger        *slog.Logger
	retentionDays int
	ch            chan report.Placement
	stop          chan struct{}
	done          chan struct{}
}

// Option configures a Journal.
type Option func(*Journal)

// WithIDGenerator sets a custom ID generator for placement IDs.
func WithIDGenerator(gen idgen.Generator) Option {
	return func(j *Journal) { j.newID = gen }
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(j *Journal) {
		if l != nil {
			j.logger = l
		}
	}
}

// WithRetention enables retention cleanup: rows older than days are purged
// when the journal opens and once a day afterwards.
func WithRetention(days int) Option {
	return func(j *Journal) { j.retentionDays = days }
}

// Open opens (or creates) a journal database at path and starts the flush
// goroutine. Close also closes the underlying database.
func Open(path string, opts ...Option) (*Journal, error) {
	db, err := sqlite.Open(path, Schema)
	if err != nil {
		return nil, fmt.Errorf("journal: %w", err)
	}
	j := New(db, 1000, opts...)
	j.owned = true
	return j, nil
}

// New creates a Journal on an existing database which must already carry
// Schema. Recommended bufferSize: 1000.
func New(db *sql.DB, bufferSize int, opts ...Option) *Journal {
	j := &Journal{
		db:     db,
		newID:  idgen.Prefixed("plc_", idgen.UUIDv7()),
		logger: slog.Default(),
		ch:     make(chan report.Placement, bufferSize),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	for _, o := range opts {
		o(j)
	}
	j.runRetention()
	go j.flushLoop()
	return j
}

// runRetention purges rows older than the retention window. No-op when
// retention is not configured.
func (j *Journal) runRetention() {
	if j.retentionDays <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	n, err := j.Cleanup(ctx, j.retentionDays)
	if err != nil {
		j.logger.Warn("journal: retention cleanup failed", "error", err)
		return
	}
	if n > 0 {
		j.logger.Info("journal: retention cleanup",
			"deleted", n, "retention_days", j.retentionDays)
	}
}

// Record queues a placement for async persistence, filling the ID and
// timestamp if unset. Falls back to a synchronous insert when the buffer
// is full.
func (j *Journal) Record(p report.Placement) {
	j.fillDefaults(&p)
	select {
	case j.ch <- p:
	default:
		j.logger.Warn("journal: buffer full, sync fallback", "page_id", p.PageID)
		if err := j.insert(context.Background(), p); err != nil {
			j.logger.Error("journal: sync fallback failed", "error", err)
		}
	}
}

// RecordSync inserts a placement synchronously.
func (j *Journal) RecordSync(ctx context.Context, p report.Placement) error {
	j.fillDefaults(&p)
	return j.insert(ctx, p)
}

// Filter narrows Query results. Zero fields match everything.
type Filter struct {
	PageID        string
	MoverSelector string
	Since         time.Time
	Until         time.Time
	Limit         int // default 100
}

// Query retrieves placements matching the filter, newest first.
func (j *Journal) Query(ctx context.Context, f Filter) ([]report.Placement, error) {
	q := `SELECT placement_id, page_id, page_url, target_selector, mover_selector,
		position, mover_code, target_code, left_px, top_px,
		offset_x, offset_y, reparented, applied_at
		FROM placements WHERE 1=1`
	var args []any

	if f.PageID != "" {
		q += " AND page_id = ?"
		args = append(args, f.PageID)
	}
	if f.MoverSelector != "" {
		q += " AND mover_selector = ?"
		args = append(args, f.MoverSelector)
	}
	if !f.Since.IsZero() {
		q += " AND applied_at >= ?"
		args = append(args, f.Since.Unix())
	}
	if !f.Until.IsZero() {
		q += " AND applied_at <= ?"
		args = append(args, f.Until.Unix())
	}

	limit := 100
	if f.Limit > 0 {
		limit = f.Limit
	}
	q += " ORDER BY applied_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := j.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query: %w", err)
	}
	defer rows.Close()

	var out []report.Placement
	for rows.Next() {
		var (
			p         report.Placement
			reparent  int
			appliedAt int64
		)
		if err := rows.Scan(&p.ID, &p.PageID, &p.PageURL, &p.TargetSelector,
			&p.MoverSelector, &p.Position, &p.MoverCode, &p.TargetCode,
			&p.Left, &p.Top, &p.OffsetX, &p.OffsetY, &reparent, &appliedAt); err != nil {
			return nil, fmt.Errorf("journal: scan: %w", err)
		}
		p.Reparented = reparent != 0
		p.AppliedAt = time.Unix(appliedAt, 0)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Cleanup deletes placements older than retentionDays.
func (j *Journal) Cleanup(ctx context.Context, retentionDays int) (int64, error) {
	threshold := time.Now().AddDate(0, 0, -retentionDays).Unix()
	res, err := j.db.ExecContext(ctx, "DELETE FROM placements WHERE applied_at < ?", threshold)
	if err != nil {
		return 0, fmt.Errorf("journal: cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Close drains the buffer, stops the flush goroutine, and closes the
// database when the journal opened it itself.
func (j *Journal) Close() error {
	close(j.stop)
	<-j.done
	if j.owned {
		return j.db.Close()
	}
	return nil
}

func (j *Journal) fillDefaults(p *report.Placement) {
	if p.ID == "" {
		p.ID = j.newID()
	}
	if p.AppliedAt.IsZero() {
		p.AppliedAt = time.Now()
	}
}

func (j *Journal) flushLoop() {
	defer close(j.done)
	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	batch := make([]report.Placement, 0, 100)

	var retention <-chan time.Time
	if j.retentionDays > 0 {
		rt := time.NewTicker(24 * time.Hour)
		defer rt.Stop()
		retention = rt.C
	}

	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		tx, err := j.db.BeginTx(ctx, nil)
		if err != nil {
			j.logger.Error("journal: begin tx", "error", err)
			return
		}
		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			tx.Rollback()
			j.logger.Error("journal: prepare", "error", err)
			return
		}
		defer stmt.Close()

		for _, p := range batch {
			if _, err := stmt.ExecContext(ctx, insertArgs(p)...); err != nil {
				j.logger.Error("journal: insert", "error", err, "placement_id", p.ID)
			}
		}
		if err := tx.Commit(); err != nil {
			j.logger.Error("journal: commit", "error", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case <-j.stop:
			for {
				select {
				case p := <-j.ch:
					batch = append(batch, p)
				default:
					flush()
					return
				}
			}
		case p := <-j.ch:
			batch = append(batch, p)
			if len(batch) >= 100 {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-retention:
			j.runRetention()
		}
	}
}

const insertSQL = `INSERT INTO placements
	(placement_id, page_id, page_url, target_selector, mover_selector,
	 position, mover_code, target_code, left_px, top_px,
	 offset_x, offset_y, reparented, applied_at)
	VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`

func insertArgs(p report.Placement) []any {
	reparent := 0
	if p.Reparented {
		reparent = 1
	}
	return []any{
		p.ID, p.PageID, p.PageURL, p.TargetSelector, p.MoverSelector,
		p.Position, p.MoverCode, p.TargetCode, p.Left, p.Top,
		p.OffsetX, p.OffsetY, reparent, p.AppliedAt.Unix(),
	}
}

func (j *Journal) insert(ctx context.Context, p report.Placement) error {
	_, err := j.db.ExecContext(ctx, insertSQL, insertArgs(p)...)
	return err
}
