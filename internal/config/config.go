// Package config loads optional YAML pattern-set files for the extractor.
// A pattern file replaces the built-in marker sets and can override the
// numeric thresholds; explicit CLI flags still win.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSud0/openvpn-mem-extractor/internal/scan"
)

// PatternEntry is one start or end marker in a pattern file.
type PatternEntry struct {
	Text         string `yaml:"text"`
	Contains     bool   `yaml:"contains"`
	IgnoreCase   bool   `yaml:"ignore_case"`
	KeyDirection bool   `yaml:"key_direction"`
}

// File is the on-disk pattern configuration.
type File struct {
	MinLines       int            `yaml:"min_lines"`
	MinRun         int            `yaml:"min_run"`
	RestartOnStart bool           `yaml:"restart_on_start"`
	StartPatterns  []PatternEntry `yaml:"start_patterns"`
	EndPatterns    []PatternEntry `yaml:"end_patterns"`
}

// Load reads and validates a pattern file. Unknown fields are rejected.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pattern file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg File
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse pattern file %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid pattern file %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *File) validate() error {
	if c.MinLines < 0 {
		return errors.New("min_lines must be ≥ 0")
	}
	if c.MinRun < 0 {
		return errors.New("min_run must be ≥ 0")
	}
	for _, p := range c.StartPatterns {
		if p.KeyDirection {
			return errors.New("key_direction is an end marker")
		}
		if p.Text == "" {
			return errors.New("start pattern entry needs text")
		}
	}
	for _, p := range c.EndPatterns {
		if p.Text == "" && !p.KeyDirection {
			return errors.New("end pattern entry needs text or key_direction")
		}
	}
	return nil
}

// Patterns converts file entries to scanner patterns.
func Patterns(entries []PatternEntry) []scan.Pattern {
	out := make([]scan.Pattern, 0, len(entries))
	for _, e := range entries {
		out = append(out, scan.Pattern{
			Text:         e.Text,
			Contains:     e.Contains,
			Fold:         e.IgnoreCase,
			KeyDirection: e.KeyDirection,
		})
	}
	return out
}
