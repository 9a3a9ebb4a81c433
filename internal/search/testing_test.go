package search

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sha1n/contentkit/internal/domain"
)

func closeIndex(t *testing.T, c io.Closer) {
	t.Helper()
	if err := c.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}

func testRecords() []domain.ContentRecord {
	return []domain.ContentRecord{
		{
			ID: "rec-md", Name: "notes/bread", SourcePath: "notes/bread/content",
			Kind: domain.KindMarkdown, Description: "Sourdough Bread", Preview: "# Sourdough Bread",
			Text: "# Sourdough Bread\n\nMix flour and water, then wait for fermentation.",
		},
		{
			ID: "rec-py", Name: "scripts/stats", SourcePath: "scripts/stats/content",
			Kind: domain.CodeKind(domain.SubtypePython), Description: "Function: compute_median",
			Text: "import math\n\ndef compute_median(values):\n    return sorted(values)[len(values)//2]\n",
		},
		{
			ID: "rec-img", Name: "photos/cat", SourcePath: "photos/cat/content",
			Kind: domain.ImageKind(domain.SubtypePNG), Description: "PNG Image", Preview: "[Image Preview]",
			Raw: []byte{0x89, 'P', 'N', 'G'},
		},
		{
			ID: "rec-txt", Name: "misc/todo", SourcePath: "misc/todo/content",
			Kind: domain.KindText, Description: "Text Document",
			Text: "remember the fermentation schedule",
		},
	}
}

// buildTestIndex indexes testRecords and returns an open searcher
func buildTestIndex(t *testing.T) *Searcher {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".search")

	count, err := NewIndexer(path).Rebuild(context.Background(), testRecords())
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if count != len(testRecords()) {
		t.Fatalf("Rebuild indexed %d documents, want %d", count, len(testRecords()))
	}

	s, err := OpenSearcher(path)
	if err != nil {
		t.Fatalf("OpenSearcher failed: %v", err)
	}
	t.Cleanup(func() { closeIndex(t, s) })
	return s
}
