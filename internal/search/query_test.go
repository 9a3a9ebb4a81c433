package search

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestSearcher_Search(t *testing.T) {
	s := buildTestIndex(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		query   Query
		wantIDs []string
	}{
		{"content match", Query{Text: "flour"}, []string{"rec-md"}},
		{"description match", Query{Text: "sourdough"}, []string{"rec-md"}},
		{"symbol match", Query{Text: "compute_median"}, []string{"rec-py"}},
		{"type filter", Query{Text: "fermentation", Type: "text"}, []string{"rec-txt"}},
		{"subtype filter", Query{Type: "code", Subtype: "python"}, []string{"rec-py"}},
		{"type only", Query{Type: "image"}, []string{"rec-img"}},
		{"no match", Query{Text: "zeppelin"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.Search(ctx, tt.query)
			if err != nil {
				t.Fatalf("Search failed: %v", err)
			}
			if len(res.Hits) != len(tt.wantIDs) {
				t.Fatalf("Got %d hits, want %d: %+v", len(res.Hits), len(tt.wantIDs), res.Hits)
			}
			for i, id := range tt.wantIDs {
				if res.Hits[i].ID != id {
					t.Errorf("Hit %d = %s, want %s", i, res.Hits[i].ID, id)
				}
			}
		})
	}
}

func TestSearcher_Search_MultipleHits(t *testing.T) {
	s := buildTestIndex(t)

	res, err := s.Search(context.Background(), Query{Text: "fermentation"})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Total != 2 {
		t.Errorf("Total = %d, want 2", res.Total)
	}
	for _, h := range res.Hits {
		if h.Page != h.ID+".html" {
			t.Errorf("Page = %q for %s", h.Page, h.ID)
		}
		if len(h.Fragments) == 0 {
			t.Errorf("Expected highlighted fragments for %s", h.ID)
		}
	}
}

func TestSearcher_Search_Limit(t *testing.T) {
	s := buildTestIndex(t)

	res, err := s.Search(context.Background(), Query{Limit: 2})
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if res.Total != 4 || len(res.Hits) != 2 {
		t.Errorf("Total = %d, hits = %d; want 4 and 2", res.Total, len(res.Hits))
	}
}

func TestSearcher_Lookup(t *testing.T) {
	s := buildTestIndex(t)

	doc, err := s.Lookup(context.Background(), "rec-py")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if doc.Name != "scripts/stats" || doc.Type != "code" || doc.Subtype != "python" {
		t.Errorf("Unexpected document: %+v", doc)
	}
	if !strings.Contains(doc.Content, "def compute_median") {
		t.Errorf("Content not stored: %q", doc.Content)
	}
	if len(doc.Symbols) != 1 || doc.Symbols[0] != "compute_median" {
		t.Errorf("Symbols = %v", doc.Symbols)
	}
	if doc.SourcePath != "scripts/stats/content" {
		t.Errorf("SourcePath = %q", doc.SourcePath)
	}
}

func TestSearcher_Lookup_NotFound(t *testing.T) {
	s := buildTestIndex(t)

	_, err := s.Lookup(context.Background(), "nope")
	if !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestBuildQuery_Filters(t *testing.T) {
	if q := BuildQuery(Query{Text: "x"}); q == nil {
		t.Fatal("Expected non-nil query")
	}
	if q := BuildQuery(Query{Type: "CODE"}); q == nil {
		t.Fatal("Expected non-nil query")
	}
}
