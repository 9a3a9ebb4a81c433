package notes

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// RegistryFilename is the name of the registry file inside the notes directory
const RegistryFilename = "notes.json"

// Entry is one registered document
type Entry struct {
	Title string    `json:"title"`
	Path  string    `json:"path"`
	Added time.Time `json:"added"`
}

// Registry is the ordered list of registered documents, in insertion order
type Registry struct {
	Entries []Entry
}

// LoadRegistry reads a registry from disk, or returns an empty one if it doesn't exist
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Registry{}, nil
		}
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse registry %s: %w", path, err)
	}
	return &Registry{Entries: entries}, nil
}

// Save writes the registry to disk atomically (temp file + rename)
func (r *Registry) Save(path string) error {
	entries := r.Entries
	if entries == nil {
		entries = []Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// Find returns the entry registered for path
func (r *Registry) Find(path string) (Entry, bool) {
	for _, e := range r.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Add appends e unless its path is already registered.
// Returns the registered entry and whether it already existed.
func (r *Registry) Add(e Entry) (Entry, bool) {
	if existing, ok := r.Find(e.Path); ok {
		return existing, true
	}
	r.Entries = append(r.Entries, e)
	return e, false
}

// Remove drops every entry whose path contains identifier or whose title
// contains it case-insensitively. Returns the removed entries.
func (r *Registry) Remove(identifier string) []Entry {
	if identifier == "" {
		return nil
	}
	lower := strings.ToLower(identifier)

	var kept, removed []Entry
	for _, e := range r.Entries {
		if strings.Contains(e.Path, identifier) || strings.Contains(strings.ToLower(e.Title), lower) {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	r.Entries = kept
	return removed
}

// Newest returns a copy of the entries, most recently added first
func (r *Registry) Newest() []Entry {
	sorted := append([]Entry(nil), r.Entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Added.After(sorted[j].Added)
	})
	return sorted
}

// LastAdded returns the most recent added time, or the zero time for an empty registry
func (r *Registry) LastAdded() time.Time {
	var last time.Time
	for _, e := range r.Entries {
		if e.Added.After(last) {
			last = e.Added
		}
	}
	return last
}

func writeFileAtomic(path string, data []byte) error {
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", filepath.Base(path), err)
	}
	return nil
}
