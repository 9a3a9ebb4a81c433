package site

import (
	"bytes"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/sha1n/contentkit/internal/domain"
)

const (
	// htmlSourceLimit caps the escaped source listing on HTML pages
	htmlSourceLimit = 5000
	// hexDumpLimit caps the bytes shown for binary content
	hexDumpLimit = 1024
	// highlightStyle is the chroma style for code listings
	highlightStyle = "github"
)

// lexerNames maps subtypes to chroma lexer names
var lexerNames = map[domain.Subtype]string{
	domain.SubtypeReact:      "react",
	domain.SubtypeJavaScript: "javascript",
	domain.SubtypePython:     "python",
	domain.SubtypeCSS:        "css",
	domain.SubtypeJSON:       "json",
	domain.SubtypeXML:        "xml",
}

var codeFormatter = chromahtml.New(
	chromahtml.WithLineNumbers(true),
	chromahtml.TabWidth(4),
)

// renderBody returns the HTML fragment shown on a record's page
func (r *Renderer) renderBody(rec *domain.ContentRecord) (string, error) {
	switch rec.Type {
	case domain.TypeImage:
		return fmt.Sprintf(`<img class="content-image" src="data:image/%s;base64,%s" alt="%s">`,
			rec.Subtype, base64.StdEncoding.EncodeToString(rec.Raw), html.EscapeString(rec.Description)), nil
	case domain.TypeHTML:
		return htmlBody(rec.Text), nil
	case domain.TypeMarkdown:
		return r.Markdown.Render([]byte(rec.Text))
	case domain.TypeCode, domain.TypeXML:
		return highlight(rec.Text, lexerNames[rec.Subtype])
	case domain.TypeJSON:
		return highlight(prettyJSON(rec.Text), lexerNames[domain.SubtypeJSON])
	case domain.TypeBinary:
		return `<pre class="hex-dump">` + html.EscapeString(hexDump(rec.Raw)) + `</pre>`, nil
	default:
		return `<pre class="text-content">` + html.EscapeString(rec.Text) + `</pre>`, nil
	}
}

func htmlBody(text string) string {
	source := truncateRunes(text, htmlSourceLimit)
	var sb strings.Builder
	sb.WriteString(`<div class="html-preview">`)
	sb.WriteString("\n<h3>HTML Source:</h3>\n<pre><code>")
	sb.WriteString(html.EscapeString(source))
	if len(source) < len(text) {
		sb.WriteString("...")
	}
	sb.WriteString("</code></pre>\n<h3>HTML Preview:</h3>\n")
	sb.WriteString(`<iframe srcdoc="` + html.EscapeString(text) + `"></iframe>`)
	sb.WriteString("\n</div>")
	return sb.String()
}

// highlight renders code as a chroma highlighted block with inline styles
func highlight(code, lexerName string) (string, error) {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(highlightStyle)
	if style == nil {
		style = styles.Fallback
	}

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", lexerName, err)
	}

	var buf bytes.Buffer
	if err := codeFormatter.Format(&buf, style, it); err != nil {
		return "", fmt.Errorf("failed to format %s: %w", lexerName, err)
	}
	return buf.String(), nil
}

// prettyJSON re-indents valid JSON; anything else is returned unchanged
func prettyJSON(text string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}

func hexDump(raw []byte) string {
	if len(raw) <= hexDumpLimit {
		return hex.Dump(raw)
	}
	return hex.Dump(raw[:hexDumpLimit]) + fmt.Sprintf("... %d more bytes\n", len(raw)-hexDumpLimit)
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit])
}
