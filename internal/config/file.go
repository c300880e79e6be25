// Package config handles domalign configuration from YAML files or SQLite.
package config

import (
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level domalign configuration.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Pages   []PageConfig  `yaml:"pages"`
	Sinks   []SinkConfig  `yaml:"sinks"`
	Journal JournalConfig `yaml:"journal"`
}

// BrowserConfig controls Chrome lifecycle.
type BrowserConfig struct {
	Remote          string        `yaml:"remote"`
	MemoryLimit     int64         `yaml:"memory_limit"`
	RecycleInterval time.Duration `yaml:"recycle_interval"`
	BlockResources  []string      `yaml:"block_resources"`
	Mode            string        `yaml:"mode"` // headless | headful
	XvfbDisplay     string        `yaml:"xvfb_display"`
}

// PageConfig defines a page and the alignment rules to apply to it.
type PageConfig struct {
	ID    string `yaml:"id"`
	URL   string `yaml:"url"`
	Rules []Rule `yaml:"rules"`
}

// Rule aligns a set of mover elements against one target element.
type Rule struct {
	Target         string   `yaml:"target"`   // CSS selector, one element
	Movers         []string `yaml:"movers"`   // CSS selectors, one element each
	Position       string   `yaml:"position"` // 0-4 letter code; invalid falls back to center
	OffsetX        float64  `yaml:"offset_x"`
	OffsetY        float64  `yaml:"offset_y"`
	ReparentToRoot bool     `yaml:"reparent_to_root"`
}

// SinkConfig defines an output backend for placement reports.
type SinkConfig struct {
	Type string `yaml:"type"` // stdout | webhook
	URL  string `yaml:"url"`  // for webhook
}

// JournalConfig controls the SQLite placement journal. An empty path
// disables journalling.
type JournalConfig struct {
	Path          string `yaml:"path"`
	RetentionDays int    `yaml:"retention_days"`
}

// LoadFile reads a YAML configuration file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// ApplyDefaults fills unset fields and normalises rule offsets. Offsets
// from any textual source are whole pixels: fractional values truncate
// toward zero, matching how the options were historically parsed.
func (c *Config) ApplyDefaults() {
	if c.Browser.MemoryLimit <= 0 {
		c.Browser.MemoryLimit = 1 << 30
	}
	if c.Browser.RecycleInterval <= 0 {
		c.Browser.RecycleInterval = 4 * time.Hour
	}
	if c.Browser.XvfbDisplay == "" {
		c.Browser.XvfbDisplay = ":99"
	}
	if c.Browser.Mode == "" {
		c.Browser.Mode = "headless"
	}
	if c.Journal.RetentionDays <= 0 {
		c.Journal.RetentionDays = 30
	}
	for i := range c.Pages {
		for j := range c.Pages[i].Rules {
			r := &c.Pages[i].Rules[j]
			r.OffsetX = math.Trunc(r.OffsetX)
			r.OffsetY = math.Trunc(r.OffsetY)
		}
	}
}
