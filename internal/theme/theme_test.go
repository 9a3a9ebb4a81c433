package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "theme-modern.css"), `:root{} [data-color-scheme="dark"] {color: #fff}`)
	writeFile(t, filepath.Join(dir, "theme-dark-blue.css"), `:root{}`)
	writeFile(t, filepath.Join(dir, "core.css"), `body{}`)

	themes, err := Discover(dir, "styles")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(themes) != 2 {
		t.Fatalf("Expected 2 themes, got %d: %+v", len(themes), themes)
	}

	want := []Theme{
		{ID: "dark-blue", Name: "Dark Blue", CSSURL: "styles/theme-dark-blue.css", SupportsDark: false},
		{ID: "modern", Name: "Modern", CSSURL: "styles/theme-modern.css", SupportsDark: true},
	}
	for i := range want {
		if themes[i] != want[i] {
			t.Errorf("themes[%d] = %+v, want %+v", i, themes[i], want[i])
		}
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	themes, err := Discover(filepath.Join(t.TempDir(), "missing"), "")
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	if len(themes) != 0 {
		t.Errorf("Expected no themes, got %+v", themes)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"modern", "Modern"},
		{"dark-blue", "Dark Blue"},
		{"solarized-light-v2", "Solarized Light V2"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := DisplayName(tt.id); got != tt.want {
				t.Errorf("DisplayName(%q) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestJoinURL(t *testing.T) {
	if got := joinURL("file:///n/styles/", "a.css"); got != "file:///n/styles/a.css" {
		t.Errorf("joinURL() = %q", got)
	}
	if got := joinURL("", "a.css"); got != "a.css" {
		t.Errorf("joinURL() = %q", got)
	}
}
