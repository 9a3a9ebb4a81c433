package markdown

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/sha1n/contentkit/internal/theme"
)

//go:embed templates/page.html.tmpl
var pageTemplateText string

var pageTemplate = template.Must(template.New("page").Parse(pageTemplateText))

// PageOptions controls the document wrapped around rendered Markdown
type PageOptions struct {
	Title     string
	Theme     string // empty selects the catalog default
	Badge     string // empty uses the content page type default
	Subtitle  string // empty uses the content page type default
	CSSBase   string // URL prefix of core.css and the page stylesheet
	Generated time.Time
}

type themeOption struct {
	ID     string
	Name   string
	CSSURL template.URL
}

type pageData struct {
	Title     string
	Theme     string
	Themes    []themeOption
	CoreCSS   template.URL
	PageCSS   template.URL
	Badge     string
	Subtitle  string
	Body      template.HTML
	Generated string
}

// Page renders src into a complete themed HTML document
func (r *Renderer) Page(src []byte, catalog *theme.Catalog, opts PageOptions) (string, error) {
	body, err := r.Render(src)
	if err != nil {
		return "", err
	}

	themeID := opts.Theme
	if themeID == "" {
		themeID = catalog.DefaultTheme()
	} else if _, ok := catalog.Theme(themeID); !ok {
		return "", fmt.Errorf("unknown theme: %s", themeID)
	}

	pt := catalog.PageType(theme.PageContent)
	data := pageData{
		Title:     opts.Title,
		Theme:     themeID,
		CoreCSS:   cssURL(opts.CSSBase, "core.css"),
		PageCSS:   cssURL(opts.CSSBase, pt.CSSFile),
		Badge:     firstNonEmpty(opts.Badge, pt.BadgeDefault),
		Subtitle:  firstNonEmpty(opts.Subtitle, pt.SubtitleDefault),
		Body:      template.HTML(body),
		Generated: opts.Generated.Format("2006-01-02 15:04"),
	}
	for _, t := range catalog.Themes() {
		data.Themes = append(data.Themes, themeOption{ID: t.ID, Name: t.Name, CSSURL: template.URL(t.CSSURL)})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// cssURL joins a stylesheet name to base. Generated pages link stylesheets
// through file:// URLs, which html/template would otherwise filter out.
func cssURL(base, file string) template.URL {
	if base == "" {
		return template.URL(file)
	}
	return template.URL(strings.TrimSuffix(base, "/") + "/" + file)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
