package domalign

import (
	"context"
	"database/sql"

	"github.com/hazyhaar/domalign/internal/config"
)

// Config is the top-level domalign configuration. Re-exported from internal.
type Config = config.Config

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig = config.BrowserConfig

// PageConfig defines a page and its alignment rules.
type PageConfig = config.PageConfig

// Rule aligns a set of movers against one target element.
type Rule = config.Rule

// SinkConfig defines an output backend for placement reports.
type SinkConfig = config.SinkConfig

// JournalConfig controls the SQLite placement journal.
type JournalConfig = config.JournalConfig

// RulesSchema is the SQL schema for the align_rules table.
const RulesSchema = config.Schema

// LoadConfigFile reads a YAML configuration file.
func LoadConfigFile(path string) (*Config, error) {
	return config.LoadFile(path)
}

// LoadPagesFromDB reads active alignment rules from an align_rules table.
func LoadPagesFromDB(ctx context.Context, db *sql.DB) ([]PageConfig, error) {
	return config.LoadPages(ctx, db)
}
