package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"

	"github.com/google/uuid"

	"github.com/sha1n/contentkit/internal/content"
	"github.com/sha1n/contentkit/internal/domain"
)

// DefaultContentFilename is the file name the collector looks for
const DefaultContentFilename = "content"

// recordNamespace scopes record IDs; IDs are UUIDv5 of the relative source path.
var recordNamespace = uuid.MustParse("2f8f7a52-3c1e-4d8a-9b6e-0c5f1d7e4a91")

// RecordID returns the stable identifier of the content file at relPath
func RecordID(relPath string) string {
	return uuid.NewSHA1(recordNamespace, []byte(relPath)).String()
}

// Skip is a content file that could not be turned into a record
type Skip struct {
	Path   string
	Reason string
}

// Collection is the outcome of walking a source tree
type Collection struct {
	Records []domain.ContentRecord
	Skipped []Skip
}

// CountByType returns the number of records per type
func (c *Collection) CountByType() map[domain.Type]int {
	counts := make(map[domain.Type]int, len(domain.Types))
	for i := range c.Records {
		counts[c.Records[i].Type]++
	}
	return counts
}

// Collector discovers content files and builds records from them
type Collector struct {
	// Filename is the base name of content files
	Filename string
	// RootName names records found directly in the walked root
	RootName      string
	Filter        *Filter
	PreviewLength int
	// Ignore lists slash separated directories, relative to the root, that
	// are never walked (for example the output directory)
	Ignore []string
	Logger *slog.Logger
}

// NewCollector creates a collector with default settings
func NewCollector(rootName string) *Collector {
	return &Collector{
		Filename:      DefaultContentFilename,
		RootName:      rootName,
		Filter:        NewFilter(nil, 0),
		PreviewLength: content.DefaultPreviewLength,
		Logger:        slog.Default(),
	}
}

// Collect walks fsys and builds one record per content file, sorted by name.
// Unreadable or oversized files are logged and reported in Skipped; the walk
// continues. Only a failure to read the root itself is returned as an error.
func (c *Collector) Collect(ctx context.Context, fsys fs.FS) (*Collection, error) {
	col := &Collection{}
	seen := make(map[string]string)
	ignored := make(map[string]bool, len(c.Ignore))
	for _, dir := range c.Ignore {
		ignored[path.Clean(dir)] = true
	}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == "." {
				return err
			}
			c.skip(col, p, err.Error())
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if ignored[p] || c.Filter.SkipDir(p) {
				return fs.SkipDir
			}
			return nil
		}
		if d.Name() != c.Filename || !d.Type().IsRegular() || c.Filter.ExcludeFile(p) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			c.skip(col, p, err.Error())
			return nil
		}
		if c.Filter.TooLarge(info.Size()) {
			c.skip(col, p, fmt.Sprintf("file size %d exceeds limit", info.Size()))
			return nil
		}

		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			c.skip(col, p, err.Error())
			return nil
		}

		rec := c.newRecord(p, raw)
		if prev, dup := seen[rec.ID]; dup {
			c.skip(col, p, "duplicate record id shared with "+prev)
			return nil
		}
		seen[rec.ID] = p
		col.Records = append(col.Records, rec)
		c.Logger.Debug("Collected content", "path", p, "kind", rec.Kind.String())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk source: %w", err)
	}

	sort.SliceStable(col.Records, func(i, j int) bool {
		return col.Records[i].Name < col.Records[j].Name
	})
	return col, nil
}

func (c *Collector) newRecord(p string, raw []byte) domain.ContentRecord {
	a := content.Analyze(raw, c.PreviewLength)

	name := path.Dir(p)
	if name == "." {
		name = c.RootName
	}

	return domain.ContentRecord{
		ID:          RecordID(p),
		Name:        name,
		SourcePath:  p,
		Kind:        a.Kind,
		Description: a.Description,
		Preview:     a.Preview,
		Size:        int64(len(raw)),
		Raw:         raw,
		Text:        a.Text,
	}
}

func (c *Collector) skip(col *Collection, p, reason string) {
	c.Logger.Warn("Skipping content file", "path", p, "reason", reason)
	col.Skipped = append(col.Skipped, Skip{Path: p, Reason: reason})
}
