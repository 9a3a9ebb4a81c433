package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// FilePrefix is the file name prefix of theme stylesheets
	FilePrefix = "theme-"
	// FileExt is the file extension of theme stylesheets
	FileExt = ".css"
	// DarkSchemeSelector marks a theme stylesheet as supporting dark mode
	DarkSchemeSelector = `[data-color-scheme="dark"]`
)

// Theme is a discovered stylesheet that can be selected on generated pages
type Theme struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CSSURL       string `json:"css_url"`
	SupportsDark bool   `json:"supports_dark"`
}

var titleCaser = cases.Title(language.English)

// DisplayName derives a human readable name from a theme ID ("dark-blue" -> "Dark Blue")
func DisplayName(id string) string {
	return titleCaser.String(strings.ReplaceAll(id, "-", " "))
}

// Discover lists theme-*.css files in stylesDir, sorted by file name.
// cssBase is the URL prefix under which the stylesheets are reachable from
// generated pages. A missing styles directory yields no themes.
func Discover(stylesDir, cssBase string) ([]Theme, error) {
	matches, err := filepath.Glob(filepath.Join(stylesDir, FilePrefix+"*"+FileExt))
	if err != nil {
		return nil, fmt.Errorf("failed to scan themes: %w", err)
	}
	sort.Strings(matches)

	themes := make([]Theme, 0, len(matches))
	for _, path := range matches {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read theme %s: %w", path, err)
		}

		file := filepath.Base(path)
		id := strings.TrimSuffix(strings.TrimPrefix(file, FilePrefix), FileExt)
		themes = append(themes, Theme{
			ID:           id,
			Name:         DisplayName(id),
			CSSURL:       joinURL(cssBase, file),
			SupportsDark: strings.Contains(string(data), DarkSchemeSelector),
		})
	}
	return themes, nil
}

func joinURL(base, file string) string {
	if base == "" {
		return file
	}
	return strings.TrimSuffix(base, "/") + "/" + file
}
