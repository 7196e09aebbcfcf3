// Package source keeps the list of trading accounts whose history exports
// are loaded.
package source

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultPattern matches the per-terminal history exports.
const DefaultPattern = "*_History.csv"

// Source is one account's history directory.
type Source struct {
	Name    string `yaml:"name" json:"name"`
	Path    string `yaml:"path" json:"path"`
	Enabled bool   `yaml:"enabled" json:"enabled"`

	// Delimiter is ";", ",", "\t", or empty/"auto" to sniff it from the header.
	Delimiter string `yaml:"delimiter,omitempty" json:"delimiter,omitempty"`
	// Pattern is the file glob, DefaultPattern when empty.
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty"`
}

// Label is the account label stamped on every record from this source.
func (s Source) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return filepath.Base(filepath.Clean(s.Path))
}

func (s Source) Glob() string {
	if s.Pattern != "" {
		return s.Pattern
	}
	return DefaultPattern
}

// Sep resolves the delimiter to a rune; 0 means sniff.
func (s Source) Sep() rune {
	switch strings.ToLower(s.Delimiter) {
	case "", "auto":
		return 0
	case `\t`, "\t", "tab":
		return '\t'
	default:
		return []rune(s.Delimiter)[0]
	}
}

func (s Source) Validate() error {
	if strings.TrimSpace(s.Path) == "" {
		return fmt.Errorf("path is required")
	}
	switch strings.ToLower(s.Delimiter) {
	case "", "auto", ";", ",", "\t", `\t`, "tab", "|":
	default:
		return fmt.Errorf("delimiter %q is not supported", s.Delimiter)
	}
	if _, err := filepath.Match(s.Glob(), "x"); err != nil {
		return fmt.Errorf("pattern %q: %w", s.Pattern, err)
	}
	return nil
}

// Registry is the configured set of sources. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	sources []Source
}

func NewRegistry(sources ...Source) *Registry {
	r := &Registry{}
	r.sources = append(r.sources, sources...)
	return r
}

// Add appends a source. Labels must be unique among all sources.
func (r *Registry) Add(s Source) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("source %q: %w", s.Label(), err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.sources {
		if existing.Label() == s.Label() {
			return fmt.Errorf("source %q already registered", s.Label())
		}
	}
	r.sources = append(r.sources, s)
	return nil
}

// All returns a copy of every source in registration order.
func (r *Registry) All() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Enabled returns the enabled sources in registration order.
func (r *Registry) Enabled() []Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []Source{}
	for _, s := range r.sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// SetEnabled toggles the source with the given label.
func (r *Registry) SetEnabled(label string, on bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.sources {
		if r.sources[i].Label() == label {
			r.sources[i].Enabled = on
			return true
		}
	}
	return false
}
