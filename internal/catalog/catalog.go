// Package catalog holds the shop's priced labor/parts menu and keeps an
// in-memory view of it fresh from its configured source.
package catalog

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Entry is one priced menu item, the match target for quote generation.
type Entry struct {
	CanonicalName string  `yaml:"name" json:"name"`
	PartCost      float64 `yaml:"part_cost" json:"part_cost"`
	LaborHours    float64 `yaml:"labor_hours" json:"labor_hours"`
}

type catalogFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadFile reads a YAML catalog. Both an object with an "entries" key and
// a bare top-level list are accepted.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err == nil && len(f.Entries) > 0 {
		return validEntries(f.Entries), nil
	}
	var bare []Entry
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return validEntries(bare), nil
}

func validEntries(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		e.CanonicalName = strings.TrimSpace(e.CanonicalName)
		if e.CanonicalName == "" {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Source yields the current catalog entries; the sqlite store and the
// YAML file loader both satisfy it.
type Source interface {
	CatalogEntries() ([]Entry, error)
}

// FileSource is a Source backed by a YAML file.
type FileSource struct {
	Path string
}

func (f FileSource) CatalogEntries() ([]Entry, error) {
	return LoadFile(f.Path)
}

// Provider caches entries from a Source and swaps them atomically on
// reload. Catalog order is preserved: it is the matching tie-break.
type Provider struct {
	mu      sync.RWMutex
	source  Source
	entries []Entry
}

func NewProvider(source Source) (*Provider, error) {
	p := &Provider{source: source}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Entries returns the current snapshot. The returned slice is shared and
// must not be modified by callers.
func (p *Provider) Entries() []Entry {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.entries
}

func (p *Provider) Reload() error {
	entries, err := p.source.CatalogEntries()
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.entries = entries
	p.mu.Unlock()
	return nil
}

// Names returns the sorted canonical names, for logging.
func (p *Provider) Names() []string {
	entries := p.Entries()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.CanonicalName
	}
	sort.Strings(names)
	return names
}
