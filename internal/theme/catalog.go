package theme

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
)

// DefaultThemeID is used when the themes config names no default theme
const DefaultThemeID = "modern"

// Page type names
const (
	PageIndex   = "index"
	PageContent = "content"
)

// PageType holds the per-page-kind stylesheet and header defaults
type PageType struct {
	CSSFile         string `mapstructure:"css_file" json:"css_file"`
	BadgeDefault    string `mapstructure:"badge_default" json:"badge_default"`
	SubtitleDefault string `mapstructure:"subtitle_default" json:"subtitle_default"`
}

var defaultPageTypes = map[string]PageType{
	PageIndex: {
		CSSFile:         "index.css",
		BadgeDefault:    "Knowledge Base",
		SubtitleDefault: "Your personal collection of linked documents",
	},
	PageContent: {
		CSSFile:         "content.css",
		BadgeDefault:    "Documentation",
		SubtitleDefault: "Generated by Make Web",
	},
}

type themeOverride struct {
	Name string `mapstructure:"name"`
}

type fileConfig struct {
	DefaultTheme string                   `mapstructure:"default_theme"`
	Themes       map[string]themeOverride `mapstructure:"themes"`
	PageTypes    map[string]PageType      `mapstructure:"page_types"`
}

// Catalog is the resolved, read-only set of themes and page types
type Catalog struct {
	defaultTheme string
	themes       []Theme
	pageTypes    map[string]PageType
}

// NewCatalog builds a catalog from discovered themes with default page types
func NewCatalog(themes []Theme, defaultTheme string) *Catalog {
	if defaultTheme == "" {
		defaultTheme = DefaultThemeID
	}
	pageTypes := make(map[string]PageType, len(defaultPageTypes))
	for name, pt := range defaultPageTypes {
		pageTypes[name] = pt
	}
	return &Catalog{
		defaultTheme: defaultTheme,
		themes:       append([]Theme(nil), themes...),
		pageTypes:    pageTypes,
	}
}

// LoadConfig merges the optional themes config file at path (JSON, YAML or
// TOML, chosen by extension) with the discovered themes. Config entries only
// rename themes that were discovered. An empty path or a missing file yields
// the defaults.
func LoadConfig(path string, discovered []Theme) (*Catalog, error) {
	catalog := NewCatalog(discovered, DefaultThemeID)
	if path == "" {
		return catalog, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return catalog, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read themes config %s: %w", path, err)
	}

	var cfg fileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode themes config %s: %w", path, err)
	}

	if cfg.DefaultTheme != "" {
		catalog.defaultTheme = cfg.DefaultTheme
	}
	for i := range catalog.themes {
		if o, ok := cfg.Themes[catalog.themes[i].ID]; ok && o.Name != "" {
			catalog.themes[i].Name = o.Name
		}
	}
	for name, pt := range cfg.PageTypes {
		catalog.pageTypes[name] = mergePageType(catalog.pageTypes[name], pt)
	}
	return catalog, nil
}

func mergePageType(base, override PageType) PageType {
	if override.CSSFile != "" {
		base.CSSFile = override.CSSFile
	}
	if override.BadgeDefault != "" {
		base.BadgeDefault = override.BadgeDefault
	}
	if override.SubtitleDefault != "" {
		base.SubtitleDefault = override.SubtitleDefault
	}
	return base
}

// DefaultTheme returns the ID of the theme selected by default
func (c *Catalog) DefaultTheme() string {
	return c.defaultTheme
}

// Themes returns a copy of the themes in discovery order
func (c *Catalog) Themes() []Theme {
	return append([]Theme(nil), c.themes...)
}

// Theme looks up a theme by ID
func (c *Catalog) Theme(id string) (Theme, bool) {
	for _, t := range c.themes {
		if t.ID == id {
			return t, true
		}
	}
	return Theme{}, false
}

// PageType returns the settings for a page kind, or the zero value if unknown
func (c *Catalog) PageType(name string) PageType {
	return c.pageTypes[name]
}
