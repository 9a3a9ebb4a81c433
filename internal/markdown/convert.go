package markdown

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sha1n/contentkit/internal/theme"
)

// ConvertResult describes a converted document
type ConvertResult struct {
	Output string
	Title  string
}

// OutputPath returns out if set, otherwise in with its extension replaced by .html
func OutputPath(in, out string) string {
	if out != "" {
		return out
	}
	return strings.TrimSuffix(in, filepath.Ext(in)) + ".html"
}

// ConvertFile renders the Markdown file in into a themed page written to out
// (see OutputPath). The page title is opts.Title, else the first level-1
// heading, else the input file stem.
func (r *Renderer) ConvertFile(in, out string, catalog *theme.Catalog, opts PageOptions) (ConvertResult, error) {
	src, err := os.ReadFile(in)
	if err != nil {
		return ConvertResult{}, fmt.Errorf("failed to read %s: %w", in, err)
	}

	out = OutputPath(in, out)
	if filepath.Clean(out) == filepath.Clean(in) {
		return ConvertResult{}, errors.New("output path must differ from input path: " + in)
	}

	if opts.Title == "" {
		opts.Title = r.Title(src)
	}
	if opts.Title == "" {
		opts.Title = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}
	if opts.Generated.IsZero() {
		opts.Generated = time.Now()
	}

	page, err := r.Page(src, catalog, opts)
	if err != nil {
		return ConvertResult{}, err
	}

	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return ConvertResult{}, fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(page), 0644); err != nil {
		return ConvertResult{}, fmt.Errorf("failed to write %s: %w", out, err)
	}

	return ConvertResult{Output: out, Title: opts.Title}, nil
}
