// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package playbook loads and validates the clause review playbook: one
// entry per clause type, with definitions, review checklist, example
// language, and red flags.
package playbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/redline-engine/pkg/types"
)

// Playbook is a validated set of playbook entries with normalized-name lookup.
type Playbook struct {
	Entries []types.PlaybookEntry

	byName map[string]*types.PlaybookEntry
}

// Load reads a playbook from a JSON or YAML file, keyed by extension.
// YAML unmarshaling handles both formats, JSON being a YAML subset.
func Load(path string) (*Playbook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading playbook: %w", err)
	}

	var entries []types.PlaybookEntry
	switch ext := filepath.Ext(path); ext {
	case ".json", ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &entries); err != nil {
			return nil, fmt.Errorf("parsing playbook %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported playbook format %q: use .json, .yaml, or .yml", ext)
	}

	pb := &Playbook{
		Entries: entries,
		byName:  make(map[string]*types.PlaybookEntry, len(entries)),
	}
	for i := range pb.Entries {
		e := &pb.Entries[i]
		if e.Clause == "" {
			return nil, fmt.Errorf("playbook entry %d: missing clause name", i)
		}
		pb.byName[NormalizeName(e.Clause)] = e
	}
	return pb, nil
}

// Lookup returns the entry whose clause name normalizes to the same form
// as name, or nil when absent. Mapping files sometimes carry clause names
// with stray dashes or curly quotes; normalization absorbs those.
func (p *Playbook) Lookup(name string) *types.PlaybookEntry {
	return p.byName[NormalizeName(name)]
}

// Names returns the clause-type names in playbook order.
func (p *Playbook) Names() []string {
	names := make([]string, len(p.Entries))
	for i, e := range p.Entries {
		names[i] = e.Clause
	}
	return names
}

// NormalizeName strips a leading dash, trims whitespace, lowercases, and
// straightens curly apostrophes.
func NormalizeName(name string) string {
	s := strings.TrimLeft(name, "-")
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "’", "'")
	s = strings.ReplaceAll(s, "‘", "'")
	return s
}

// Fix returns the replacement text for an entry: the ideal example clause
// when present, otherwise the fallback. Empty when the entry has neither.
func Fix(e *types.PlaybookEntry) string {
	if e.ExampleIdealClause != "" {
		return e.ExampleIdealClause
	}
	return e.ExampleFallbackClause
}
