package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/sha1n/contentkit/internal/domain"
)

const (
	// MaxBatchSize is the maximum number of documents per batch
	MaxBatchSize = 100

	// MaxBatchBytes is the maximum bytes per batch (10MB)
	MaxBatchBytes = 10 * 1024 * 1024
)

// ErrIndexNotFound is returned when opening an index that was never built
var ErrIndexNotFound = errors.New("search index not found")

// ErrNotIndexDir is returned by Rebuild when the index path holds files that are not a search index
var ErrNotIndexDir = errors.New("directory is not a search index")

// indexMetaFilename is written by bleve at the root of every index
const indexMetaFilename = "index_meta.json"

// NewIndexMapping creates the Bleve index mapping for content records.
func NewIndexMapping() mapping.IndexMapping {
	docMapping := bleve.NewDocumentMapping()

	// Full-text fields
	for _, name := range []string{domain.FieldName, domain.FieldDescription, domain.FieldPreview, domain.FieldContent, domain.FieldSymbols} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = standard.Name
		f.Store = true
		f.IncludeTermVectors = name == domain.FieldContent || name == domain.FieldDescription
		docMapping.AddFieldMappingsAt(name, f)
	}

	// Exact-match filters
	for _, name := range []string{domain.FieldType, domain.FieldSubtype} {
		f := bleve.NewTextFieldMapping()
		f.Analyzer = keyword.Name
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	// Stored only
	for _, name := range []string{domain.FieldID, domain.FieldPage, domain.FieldSourcePath} {
		f := bleve.NewTextFieldMapping()
		f.Index = false
		f.Store = true
		docMapping.AddFieldMappingsAt(name, f)
	}

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = standard.Name

	return indexMapping
}

// NewDocument converts a record into its search document
func NewDocument(rec *domain.ContentRecord) domain.SearchDocument {
	doc := domain.SearchDocument{
		ID:          rec.ID,
		Name:        rec.Name,
		Type:        string(rec.Type),
		Subtype:     string(rec.Subtype),
		Description: rec.Description,
		Preview:     rec.Preview,
		Page:        rec.PageName(),
		SourcePath:  rec.SourcePath,
	}
	if rec.Type != domain.TypeImage && rec.Type != domain.TypeBinary {
		doc.Content = rec.Text
	}
	if rec.Type == domain.TypeCode {
		doc.Symbols = ExtractSymbols(rec.Subtype, rec.Text)
	}
	return doc
}

// Indexer builds the search index of a generated site
type Indexer struct {
	path string
}

// NewIndexer creates an indexer writing to the index directory at path
func NewIndexer(path string) *Indexer {
	return &Indexer{path: path}
}

// Path returns the index directory
func (i *Indexer) Path() string {
	return i.path
}

// Exists reports whether an index has been built at the indexer's path
func (i *Indexer) Exists() bool {
	_, err := os.Stat(i.path)
	return err == nil
}

// Rebuild replaces the index with one document per record.
// Returns the number of documents indexed.
func (i *Indexer) Rebuild(ctx context.Context, records []domain.ContentRecord) (count int, err error) {
	if err := i.removeExisting(); err != nil {
		return 0, err
	}

	index, err := bleve.New(i.path, NewIndexMapping())
	if err != nil {
		return 0, fmt.Errorf("failed to create index: %w", err)
	}
	defer func() {
		if cerr := index.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	batch := index.NewBatch()
	batchSize := 0
	batchBytes := 0

	for n := range records {
		if err := ctx.Err(); err != nil {
			return count, err
		}

		doc := NewDocument(&records[n])
		if err := batch.Index(doc.ID, doc); err != nil {
			return count, fmt.Errorf("failed to index %s: %w", doc.SourcePath, err)
		}
		batchSize++
		batchBytes += len(doc.Content)

		if batchSize >= MaxBatchSize || batchBytes >= MaxBatchBytes {
			if err := index.Batch(batch); err != nil {
				return count, fmt.Errorf("batch index failed: %w", err)
			}
			count += batchSize
			batch = index.NewBatch()
			batchSize = 0
			batchBytes = 0
		}
	}

	if batchSize > 0 {
		if err := index.Batch(batch); err != nil {
			return count, fmt.Errorf("final batch index failed: %w", err)
		}
		count += batchSize
	}

	return count, nil
}

// Open opens an existing index read-only
func Open(path string) (bleve.Index, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, path)
	}

	index, err := bleve.OpenUsing(path, map[string]interface{}{"read_only": true})
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}
	return index, nil
}

// removeExisting deletes the index directory when it is empty or holds a previous index.
// Any other content is left in place and reported as ErrNotIndexDir.
func (i *Indexer) removeExisting() error {
	entries, err := os.ReadDir(i.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to inspect index directory: %w", err)
	}

	if len(entries) > 0 {
		if _, err := os.Stat(filepath.Join(i.path, indexMetaFilename)); err != nil {
			return fmt.Errorf("%w: %s", ErrNotIndexDir, i.path)
		}
	}
	if err := os.RemoveAll(i.path); err != nil {
		return fmt.Errorf("failed to remove old index: %w", err)
	}
	return nil
}
