package notes

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/contentkit/internal/theme"
)

// IndexFilename is the name of the generated index inside the notes directory
const IndexFilename = "index.html"

const (
	indexTitle = "Notes Index"
	dateLayout = "2006-01-02"
)

//go:embed templates/index.html.tmpl
var defaultIndexTemplate string

type themeOption struct {
	ID     string
	Name   string
	CSSURL template.URL
}

type indexStats struct {
	Total       int
	LastUpdated string
}

type indexRow struct {
	Title string
	Path  string
	URL   template.URL
	Added string
	Icon  string
}

type indexData struct {
	Title        string
	DefaultTheme string
	Themes       []themeOption
	CoreCSS      template.URL
	PageCSS      template.URL
	Badge        string
	Subtitle     string
	Stats        indexStats
	Rows         []indexRow
	Updated      string
}

// IndexRenderer renders the notes index page
type IndexRenderer struct {
	Catalog *theme.Catalog
	// CSSBase is the URL prefix of the stylesheets, relative to the index
	CSSBase string
	// TemplatePath optionally overrides the embedded index template
	TemplatePath string
}

// FileURL returns the file:// URL of an absolute path
func FileURL(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// Render renders the themed index for r as of now
func (ir *IndexRenderer) Render(r *Registry, now time.Time) (string, error) {
	text := defaultIndexTemplate
	if ir.TemplatePath != "" {
		data, err := os.ReadFile(ir.TemplatePath)
		if err != nil {
			return "", fmt.Errorf("failed to read index template: %w", err)
		}
		text = string(data)
	}

	tmpl, err := template.New("index").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse index template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ir.data(r, now)); err != nil {
		return "", fmt.Errorf("failed to render index: %w", err)
	}
	return buf.String(), nil
}

func (ir *IndexRenderer) data(r *Registry, now time.Time) indexData {
	pt := ir.Catalog.PageType(theme.PageIndex)
	d := indexData{
		Title:        indexTitle,
		DefaultTheme: ir.Catalog.DefaultTheme(),
		CoreCSS:      template.URL(joinURL(ir.CSSBase, "core.css")),
		PageCSS:      template.URL(joinURL(ir.CSSBase, pt.CSSFile)),
		Badge:        pt.BadgeDefault,
		Subtitle:     pt.SubtitleDefault,
		Stats: indexStats{
			Total:       len(r.Entries),
			LastUpdated: lastUpdated(r.LastAdded(), now),
		},
		Updated: "Updated " + now.Format("2006-01-02 15:04"),
	}
	for _, t := range ir.Catalog.Themes() {
		d.Themes = append(d.Themes, themeOption{ID: t.ID, Name: t.Name, CSSURL: template.URL(t.CSSURL)})
	}
	for _, e := range r.Newest() {
		d.Rows = append(d.Rows, indexRow{
			Title: e.Title,
			Path:  e.Path,
			URL:   template.URL(FileURL(e.Path)),
			Added: e.Added.Format(dateLayout),
			Icon:  entryIcon(e.Path),
		})
	}
	return d
}

// lastUpdated formats the stats value: "Today", the date, or "Never"
func lastUpdated(last, now time.Time) string {
	if last.IsZero() {
		return "Never"
	}
	day := last.In(now.Location()).Format(dateLayout)
	if day == now.Format(dateLayout) {
		return "Today"
	}
	return day
}

func entryIcon(path string) string {
	if strings.Contains(strings.ToLower(path), "tools") {
		return "tool"
	}
	return "note"
}

func joinURL(base, file string) string {
	if base == "" {
		return file
	}
	return strings.TrimSuffix(base, "/") + "/" + file
}

// RenderFallbackIndex renders a minimal, unstyled index
func RenderFallbackIndex(r *Registry) string {
	var sb strings.Builder
	sb.WriteString("<!doctype html>\n")
	sb.WriteString(`<html><head><meta charset="utf-8"><title>` + indexTitle + "</title></head>\n")
	sb.WriteString("<body><h1>" + indexTitle + "</h1><ul>")

	entries := r.Newest()
	if len(entries) == 0 {
		sb.WriteString("<li>No notes yet.</li>")
	}
	for _, e := range entries {
		fmt.Fprintf(&sb, `<li><a href="%s">%s</a> (%s)</li>`,
			html.EscapeString(FileURL(e.Path)), html.EscapeString(e.Title), e.Added.Format(dateLayout))
		sb.WriteString("\n")
	}

	sb.WriteString("</ul></body></html>\n")
	return sb.String()
}
