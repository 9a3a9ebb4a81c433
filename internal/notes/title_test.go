package notes

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"title tag", "page.html", "<html><head><title>My Page</title></head></html>", "My Page"},
		{"whitespace collapsed", "page.html", "<title>\n  Spread \t over\n lines </title>", "Spread over lines"},
		{"first title wins", "page.html", "<title>One</title><title>Two</title>", "One"},
		{"no title", "report-2024.html", "<html><body><h1>Heading</h1></body></html>", "report-2024"},
		{"empty title", "blank.htm", "<title>   </title>", "blank"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			got, err := ExtractTitle(path)
			if err != nil {
				t.Fatalf("ExtractTitle failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractTitle_MissingFile(t *testing.T) {
	if _, err := ExtractTitle(filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Error("Expected error for missing file")
	}
}
