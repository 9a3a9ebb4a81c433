package content

import (
	"regexp"
	"strings"

	"github.com/sha1n/contentkit/internal/domain"
)

const (
	// MaxDescriptionLength caps descriptions, suffix included.
	MaxDescriptionLength = 60

	// TruncationSuffix marks shortened descriptions and previews.
	TruncationSuffix = "..."
)

var (
	headingPattern   = regexp.MustCompile(`(?m)^#[ \t]+(\S.*)$`)
	titlePattern     = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	componentPattern = regexp.MustCompile(`const\s+(\w+)\s*=`)
	functionPattern  = regexp.MustCompile(`def\s+(\w+)\s*\(`)
)

// fallbacks are the generic labels used when nothing better can be extracted.
var fallbacks = map[domain.Kind]string{
	domain.KindMarkdown:                       "Markdown Document",
	domain.KindHTML:                           "HTML Page",
	domain.CodeKind(domain.SubtypeReact):      "React Code",
	domain.CodeKind(domain.SubtypePython):     "Python Code",
	domain.CodeKind(domain.SubtypeJavaScript): "JavaScript Code",
	domain.CodeKind(domain.SubtypeCSS):        "CSS Stylesheet",
	domain.KindJSON:                           "JSON Data",
	domain.KindXML:                            "XML Document",
	domain.KindText:                           "Text Document",
	domain.KindBinary:                         "Binary File",
}

// Describe derives a short human-readable label for content of the given
// kind. Malformed input falls back to a generic label.
func Describe(kind domain.Kind, text string) string {
	if kind.Type == domain.TypeImage {
		return Truncate(strings.ToUpper(string(kind.Subtype))+" Image", MaxDescriptionLength)
	}

	var extracted string
	switch kind {
	case domain.KindMarkdown:
		extracted = firstGroup(headingPattern, text)
	case domain.KindHTML:
		extracted = firstGroup(titlePattern, text)
	case domain.CodeKind(domain.SubtypeReact):
		if name := firstGroup(componentPattern, text); name != "" {
			extracted = "Component: " + name
		}
	case domain.CodeKind(domain.SubtypePython):
		if name := firstGroup(functionPattern, text); name != "" {
			extracted = "Function: " + name
		}
	}

	if extracted == "" {
		extracted = fallbacks[kind]
	}
	if extracted == "" {
		extracted = "Unknown Document"
	}
	return Truncate(extracted, MaxDescriptionLength)
}

// firstGroup returns the first capture group of the first match with
// whitespace collapsed, or "".
func firstGroup(re *regexp.Regexp, text string) string {
	m := re.FindStringSubmatch(text)
	if len(m) < 2 {
		return ""
	}
	return strings.Join(strings.Fields(m[1]), " ")
}

// Truncate shortens s to at most limit runes, ending in TruncationSuffix
// when anything was cut.
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit <= len(TruncationSuffix) {
		// no room for the suffix
		return string(runes[:max(limit, 0)])
	}
	return string(runes[:limit-len(TruncationSuffix)]) + TruncationSuffix
}
