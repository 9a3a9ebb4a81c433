package site

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sha1n/contentkit/internal/config"
	"github.com/sha1n/contentkit/internal/domain"
	"github.com/sha1n/contentkit/internal/markdown"
	"github.com/sha1n/contentkit/internal/search"
)

// Result summarizes a site build
type Result struct {
	Records   []domain.ContentRecord
	Skipped   []Skip
	OutputDir string
	// Indexed is the number of search documents written, zero when indexing is off
	Indexed int
}

// Builder collects content, renders the site and indexes it
type Builder struct {
	Collector *Collector
	Renderer  *Renderer
	// Indexer is optional; nil disables the search index
	Indexer *search.Indexer
	Logger  *slog.Logger
}

// NewBuilder wires a builder from site settings
func NewBuilder(s *config.SiteSettings) (*Builder, error) {
	source, err := filepath.Abs(s.SourceDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve source directory: %w", err)
	}

	collector := NewCollector(filepath.Base(source))
	if s.ContentFilename != "" {
		collector.Filename = s.ContentFilename
	}
	collector.Filter = NewFilter(s.Exclude, s.MaxFileSize)
	if s.PreviewLength > 0 {
		collector.PreviewLength = s.PreviewLength
	}
	for _, dir := range []string{s.OutputDir, s.IndexDir} {
		if rel, ok := within(source, dir); ok {
			collector.Ignore = append(collector.Ignore, rel)
		}
	}

	renderer := NewRenderer(markdown.NewRenderer())
	if s.Workers > 0 {
		renderer.Workers = s.Workers
	}

	b := &Builder{Collector: collector, Renderer: renderer, Logger: slog.Default()}
	if s.Index {
		b.Indexer = search.NewIndexer(s.IndexDir)
	}
	return b, nil
}

// within returns dir relative to root, slash separated, when dir lies strictly inside root
func within(root, dir string) (string, bool) {
	if dir == "" {
		return "", false
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

// Build collects the content in fsys and writes the site to outDir
func (b *Builder) Build(ctx context.Context, fsys fs.FS, outDir string) (*Result, error) {
	col, err := b.Collector.Collect(ctx, fsys)
	if err != nil {
		return nil, err
	}
	b.Logger.Info("Collected content", "records", len(col.Records), "skipped", len(col.Skipped))

	if err := b.Renderer.Render(ctx, col, outDir); err != nil {
		return nil, err
	}
	b.Logger.Info("Generated website", "dir", outDir)

	res := &Result{Records: col.Records, Skipped: col.Skipped, OutputDir: outDir}
	if b.Indexer != nil {
		n, err := b.Indexer.Rebuild(ctx, col.Records)
		if err != nil {
			return nil, fmt.Errorf("failed to build search index: %w", err)
		}
		res.Indexed = n
		b.Logger.Info("Built search index", "dir", b.Indexer.Path(), "documents", n)
	}
	return res, nil
}

// Build generates the site described by s from the local file system
func Build(ctx context.Context, s *config.SiteSettings) (*Result, error) {
	b, err := NewBuilder(s)
	if err != nil {
		return nil, err
	}
	return b.Build(ctx, os.DirFS(s.SourceDir), s.OutputDir)
}
