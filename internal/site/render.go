package site

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sha1n/contentkit/internal/domain"
	"github.com/sha1n/contentkit/internal/markdown"
)

// Output file names
const (
	IndexFile  = "index.html"
	StylesFile = "styles.css"
)

// DefaultWorkers bounds concurrent page writes
const DefaultWorkers = 4

//go:embed templates/*.html.tmpl
var templateFS embed.FS

//go:embed assets/styles.css
var stylesCSS []byte

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html.tmpl"))

var typeLabels = map[domain.Type]string{
	domain.TypeMarkdown: "Articles",
	domain.TypeHTML:     "HTML",
	domain.TypeCode:     "Code",
	domain.TypeImage:    "Images",
	domain.TypeJSON:     "JSON",
	domain.TypeXML:      "XML",
	domain.TypeText:     "Text",
	domain.TypeBinary:   "Binary",
}

type pageData struct {
	*domain.ContentRecord
	Body template.HTML
}

type typeFilter struct {
	Type  domain.Type
	Label string
	Count int
}

type indexData struct {
	Records   []domain.ContentRecord
	Filters   []typeFilter
	Generated string
}

// Renderer writes the static website for a collection
type Renderer struct {
	Markdown *markdown.Renderer
	Workers  int
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewRenderer creates a renderer with default settings
func NewRenderer(md *markdown.Renderer) *Renderer {
	return &Renderer{
		Markdown: md,
		Workers:  DefaultWorkers,
		Now:      time.Now,
		Logger:   slog.Default(),
	}
}

// Render writes one page per record, then the index and the stylesheet, to outDir
func (r *Renderer) Render(ctx context.Context, col *Collection, outDir string) error {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Workers, 1))
	for i := range col.Records {
		rec := &col.Records[i]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return r.writePage(rec, outDir)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if err := r.writeIndex(col, outDir); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, StylesFile), stylesCSS, 0644); err != nil {
		return fmt.Errorf("failed to write stylesheet: %w", err)
	}
	return nil
}

func (r *Renderer) writePage(rec *domain.ContentRecord, outDir string) error {
	body, err := r.renderBody(rec)
	if err != nil {
		r.Logger.Warn("Falling back to plain page body", "path", rec.SourcePath, "error", err)
		body = `<pre class="text-content">` + template.HTMLEscapeString(rec.Text) + `</pre>`
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "page.html.tmpl", pageData{ContentRecord: rec, Body: template.HTML(body)}); err != nil {
		return fmt.Errorf("failed to render page for %s: %w", rec.SourcePath, err)
	}

	if err := os.WriteFile(filepath.Join(outDir, rec.PageName()), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write page for %s: %w", rec.SourcePath, err)
	}
	r.Logger.Debug("Generated page", "name", rec.Name, "kind", rec.Kind.String())
	return nil
}

func (r *Renderer) writeIndex(col *Collection, outDir string) error {
	counts := col.CountByType()
	data := indexData{
		Records:   col.Records,
		Generated: r.Now().Format("2006-01-02 15:04:05"),
	}
	for _, t := range domain.Types {
		if counts[t] > 0 {
			data.Filters = append(data.Filters, typeFilter{Type: t, Label: typeLabels[t], Count: counts[t]})
		}
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "index.html.tmpl", data); err != nil {
		return fmt.Errorf("failed to render index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, IndexFile), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}
