package app

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sha1n/contentkit/internal/domain"
	"github.com/sha1n/contentkit/internal/notes"
	"github.com/sha1n/contentkit/internal/search"
	"github.com/sha1n/contentkit/internal/site"
	"github.com/sha1n/contentkit/internal/theme"
)

const (
	titleWidth = 40
	addedWidth = 12
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	titleColumn = lipgloss.NewStyle().Width(titleWidth).MaxWidth(titleWidth)
	addedColumn = lipgloss.NewStyle().Width(addedWidth).MaxWidth(addedWidth)
)

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func writeBuildSummary(w io.Writer, res *site.Result) {
	fmt.Fprintln(w, successStyle.Render(fmt.Sprintf("Generated %d pages in %s", len(res.Records), res.OutputDir)))

	counts := (&site.Collection{Records: res.Records}).CountByType()
	for _, typ := range domain.Types {
		if n := counts[typ]; n > 0 {
			fmt.Fprintf(w, "  %-10s %d\n", typ, n)
		}
	}
	for _, s := range res.Skipped {
		fmt.Fprintln(w, warnStyle.Render(fmt.Sprintf("  skipped %s: %s", s.Path, s.Reason)))
	}
	if res.Indexed > 0 {
		fmt.Fprintf(w, "Indexed %d documents\n", res.Indexed)
	}
}

func writeNotesList(w io.Writer, entries []notes.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, dimStyle.Render("No notes yet."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(titleColumn.Render("TITLE")+" "+addedColumn.Render("ADDED")+" PATH"))
	for _, e := range entries {
		fmt.Fprintln(w, titleColumn.Render(truncate(e.Title, titleWidth))+" "+
			addedColumn.Render(e.Added.Format("2006-01-02"))+" "+
			dimStyle.Render(e.Path))
	}
}

func writeThemes(w io.Writer, catalog *theme.Catalog) {
	for _, t := range catalog.Themes() {
		mark := " "
		if t.ID == catalog.DefaultTheme() {
			mark = successStyle.Render("✓")
		}
		fmt.Fprintf(w, "%s %-12s %s\n", mark, t.ID, dimStyle.Render(t.Name))
	}
	fmt.Fprintf(w, "\nDefault theme: %s\n", catalog.DefaultTheme())
}

func writeSearchResult(w io.Writer, res *search.Result, siteDir string) {
	if res.Total == 0 {
		fmt.Fprintln(w, dimStyle.Render("No results."))
		return
	}

	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("%d results", res.Total)))
	for i, hit := range res.Hits {
		fmt.Fprintf(w, "\n%d. %s %s\n", i+1, headerStyle.Render(hit.Name), dimStyle.Render(hit.Type+"/"+hit.Subtype))
		if hit.Description != "" {
			fmt.Fprintf(w, "   %s\n", hit.Description)
		}
		fmt.Fprintf(w, "   %s\n", dimStyle.Render(filepath.Join(siteDir, hit.Page)))
		for _, f := range hit.Fragments {
			fmt.Fprintf(w, "   %s\n", strings.Join(strings.Fields(f), " "))
		}
	}
}
