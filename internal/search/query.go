package search

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/sha1n/contentkit/internal/domain"
)

// DefaultLimit is the number of hits returned when a query sets no limit
const DefaultLimit = 20

// ErrRecordNotFound is returned by Lookup for unknown record IDs
var ErrRecordNotFound = errors.New("record not found")

// Query describes a search over the content index.
// An empty Text matches every record, so filters alone list records.
type Query struct {
	Text    string
	Type    string
	Subtype string
	Limit   int
}

// Hit is one matching record
type Hit struct {
	ID          string
	Name        string
	Type        string
	Subtype     string
	Description string
	Page        string
	Score       float64
	Fragments   []string
}

// Result holds the hits of a query and the total match count
type Result struct {
	Total uint64
	Hits  []Hit
}

var hitFields = []string{
	domain.FieldName, domain.FieldType, domain.FieldSubtype,
	domain.FieldDescription, domain.FieldPage,
}

// Searcher queries a content index. It is safe for concurrent use.
type Searcher struct {
	index bleve.Index
}

// NewSearcher wraps an open index
func NewSearcher(index bleve.Index) *Searcher {
	return &Searcher{index: index}
}

// OpenSearcher opens the index at path read-only
func OpenSearcher(path string) (*Searcher, error) {
	index, err := Open(path)
	if err != nil {
		return nil, err
	}
	return NewSearcher(index), nil
}

// Close releases the underlying index
func (s *Searcher) Close() error {
	return s.index.Close()
}

// BuildQuery constructs a Bleve query from q
func BuildQuery(q Query) query.Query {
	var textQuery query.Query
	if strings.TrimSpace(q.Text) == "" {
		textQuery = bleve.NewMatchAllQuery()
	} else {
		contentQuery := bleve.NewMatchQuery(q.Text)
		contentQuery.SetField(domain.FieldContent)

		descriptionQuery := bleve.NewMatchQuery(q.Text)
		descriptionQuery.SetField(domain.FieldDescription)
		descriptionQuery.SetBoost(2.0)

		nameQuery := bleve.NewMatchQuery(q.Text)
		nameQuery.SetField(domain.FieldName)

		symbolsQuery := bleve.NewMatchQuery(q.Text)
		symbolsQuery.SetField(domain.FieldSymbols)
		symbolsQuery.SetBoost(5.0)

		textQuery = bleve.NewDisjunctionQuery(contentQuery, descriptionQuery, nameQuery, symbolsQuery)
	}

	if q.Type == "" && q.Subtype == "" {
		return textQuery
	}

	must := []query.Query{textQuery}
	if q.Type != "" {
		typeQuery := bleve.NewTermQuery(strings.ToLower(q.Type))
		typeQuery.SetField(domain.FieldType)
		must = append(must, typeQuery)
	}
	if q.Subtype != "" {
		subtypeQuery := bleve.NewTermQuery(strings.ToLower(q.Subtype))
		subtypeQuery.SetField(domain.FieldSubtype)
		must = append(must, subtypeQuery)
	}
	return bleve.NewConjunctionQuery(must...)
}

// Search runs q against the index
func (s *Searcher) Search(ctx context.Context, q Query) (*Result, error) {
	req := bleve.NewSearchRequest(BuildQuery(q))
	req.Size = q.Limit
	if req.Size <= 0 {
		req.Size = DefaultLimit
	}
	req.Fields = hitFields
	if strings.TrimSpace(q.Text) != "" {
		req.Highlight = bleve.NewHighlight()
		req.Highlight.AddField(domain.FieldContent)
		req.Highlight.AddField(domain.FieldDescription)
	} else {
		req.SortBy([]string{domain.FieldName, "_id"})
	}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	out := &Result{Total: res.Total, Hits: make([]Hit, 0, len(res.Hits))}
	for _, h := range res.Hits {
		hit := Hit{
			ID:          h.ID,
			Name:        stringField(h.Fields, domain.FieldName),
			Type:        stringField(h.Fields, domain.FieldType),
			Subtype:     stringField(h.Fields, domain.FieldSubtype),
			Description: stringField(h.Fields, domain.FieldDescription),
			Page:        stringField(h.Fields, domain.FieldPage),
			Score:       h.Score,
		}
		hit.Fragments = append(hit.Fragments, h.Fragments[domain.FieldDescription]...)
		hit.Fragments = append(hit.Fragments, h.Fragments[domain.FieldContent]...)
		out.Hits = append(out.Hits, hit)
	}
	return out, nil
}

// Lookup returns the stored document of the record with the given ID
func (s *Searcher) Lookup(ctx context.Context, id string) (*domain.SearchDocument, error) {
	req := bleve.NewSearchRequest(bleve.NewDocIDQuery([]string{id}))
	req.Size = 1
	req.Fields = []string{"*"}

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("lookup failed: %w", err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
	}

	f := res.Hits[0].Fields
	return &domain.SearchDocument{
		ID:          res.Hits[0].ID,
		Name:        stringField(f, domain.FieldName),
		Type:        stringField(f, domain.FieldType),
		Subtype:     stringField(f, domain.FieldSubtype),
		Description: stringField(f, domain.FieldDescription),
		Preview:     stringField(f, domain.FieldPreview),
		Content:     stringField(f, domain.FieldContent),
		Symbols:     stringsField(f, domain.FieldSymbols),
		Page:        stringField(f, domain.FieldPage),
		SourcePath:  stringField(f, domain.FieldSourcePath),
	}, nil
}

func stringField(fields map[string]interface{}, name string) string {
	if v, ok := fields[name].(string); ok {
		return v
	}
	return ""
}

// stringsField reads a stored array field; Bleve returns a single value
// as a plain string
func stringsField(fields map[string]interface{}, name string) []string {
	switch v := fields[name].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
