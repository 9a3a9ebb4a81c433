package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blevesearch/bleve/v2"

	"github.com/sha1n/contentkit/internal/domain"
)

func TestNewIndexMapping(t *testing.T) {
	m := NewIndexMapping()
	if m == nil {
		t.Fatal("Expected non-nil mapping")
	}

	index, err := bleve.New(filepath.Join(t.TempDir(), "test.bleve"), m)
	if err != nil {
		t.Fatalf("Failed to create index with mapping: %v", err)
	}
	defer closeIndex(t, index)
}

func TestNewDocument(t *testing.T) {
	recs := testRecords()

	doc := NewDocument(&recs[1])
	if doc.Page != "rec-py.html" {
		t.Errorf("Page = %q, want rec-py.html", doc.Page)
	}
	if doc.Type != "code" || doc.Subtype != "python" {
		t.Errorf("Unexpected kind: %s/%s", doc.Type, doc.Subtype)
	}
	if len(doc.Symbols) != 1 || doc.Symbols[0] != "compute_median" {
		t.Errorf("Symbols = %v, want [compute_median]", doc.Symbols)
	}

	img := NewDocument(&recs[2])
	if img.Content != "" {
		t.Error("Image documents should carry no content")
	}
	if img.Symbols != nil {
		t.Error("Only code documents carry symbols")
	}
}

func TestIndexer_Rebuild(t *testing.T) {
	path := filepath.Join(t.TempDir(), "idx")
	indexer := NewIndexer(path)

	if indexer.Exists() {
		t.Fatal("Index should not exist before the first build")
	}

	if _, err := indexer.Rebuild(context.Background(), testRecords()); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if !indexer.Exists() {
		t.Error("Index should exist after build")
	}

	// a rebuild replaces the previous contents
	count, err := indexer.Rebuild(context.Background(), testRecords()[:1])
	if err != nil {
		t.Fatalf("Second rebuild failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 document, got %d", count)
	}

	index, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer closeIndex(t, index)

	docs, err := index.DocCount()
	if err != nil {
		t.Fatalf("DocCount failed: %v", err)
	}
	if docs != 1 {
		t.Errorf("DocCount = %d, want 1", docs)
	}
}

func TestIndexer_Rebuild_ExistingDirectory(t *testing.T) {
	t.Run("foreign files are kept", func(t *testing.T) {
		dir := t.TempDir()
		keep := filepath.Join(dir, "content")
		if err := os.WriteFile(keep, []byte("# Keep me"), 0644); err != nil {
			t.Fatal(err)
		}

		_, err := NewIndexer(dir).Rebuild(context.Background(), testRecords())
		if !errors.Is(err, ErrNotIndexDir) {
			t.Fatalf("Rebuild() error = %v, want ErrNotIndexDir", err)
		}
		if _, err := os.Stat(keep); err != nil {
			t.Errorf("Foreign file was removed: %v", err)
		}
	})

	t.Run("empty directory is reused", func(t *testing.T) {
		count, err := NewIndexer(t.TempDir()).Rebuild(context.Background(), testRecords())
		if err != nil {
			t.Fatalf("Rebuild failed: %v", err)
		}
		if count != len(testRecords()) {
			t.Errorf("Indexed %d documents, want %d", count, len(testRecords()))
		}
	})
}

func TestIndexer_Rebuild_Batches(t *testing.T) {
	records := make([]domain.ContentRecord, MaxBatchSize*2+5)
	for i := range records {
		records[i] = domain.ContentRecord{
			ID:   fmt.Sprintf("rec-%03d", i),
			Name: fmt.Sprintf("dir-%03d", i),
			Kind: domain.KindText,
			Text: strings.Repeat("word ", 10),
		}
	}

	count, err := NewIndexer(filepath.Join(t.TempDir(), "idx")).Rebuild(context.Background(), records)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if count != len(records) {
		t.Errorf("Indexed %d documents, want %d", count, len(records))
	}
}

func TestIndexer_Rebuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewIndexer(filepath.Join(t.TempDir(), "idx")).Rebuild(ctx, testRecords())
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestOpen_NotFound(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrIndexNotFound) {
		t.Errorf("Expected ErrIndexNotFound, got %v", err)
	}
}
