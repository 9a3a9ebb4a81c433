package content

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/sha1n/contentkit/internal/domain"
)

// Rule is one step of the text classification chain.
type Rule struct {
	Name  string
	Kind  domain.Kind
	Match func(text string) bool
}

var (
	boldPattern = regexp.MustCompile(`\*\*[^*\s][^*\n]*\*\*`)
	jsxPattern  = regexp.MustCompile(`<[A-Z][A-Za-z0-9]*[\s/>]`)
)

// rules are evaluated top to bottom and the first match wins. Structural
// formats come before substring heuristics, and Markdown comes before code
// so fenced snippets inside a document do not turn it into code.
var rules = []Rule{
	{Name: "html", Kind: domain.KindHTML, Match: isHTML},
	{Name: "json", Kind: domain.KindJSON, Match: isJSON},
	{Name: "xml", Kind: domain.KindXML, Match: isXML},
	{Name: "markdown", Kind: domain.KindMarkdown, Match: isMarkdown},
	{Name: "react", Kind: domain.CodeKind(domain.SubtypeReact), Match: isReact},
	{Name: "javascript", Kind: domain.CodeKind(domain.SubtypeJavaScript), Match: isJavaScript},
	{Name: "python", Kind: domain.CodeKind(domain.SubtypePython), Match: isPython},
	{Name: "css", Kind: domain.CodeKind(domain.SubtypeCSS), Match: isCSS},
}

// Rules returns a copy of the ordered classification chain.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ClassifyText assigns a text-based kind. Content that matches no rule is
// plain text.
func ClassifyText(text string) domain.Kind {
	for _, r := range rules {
		if r.Match(text) {
			return r.Kind
		}
	}
	return domain.KindText
}

func isHTML(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html")
}

// isJSON accepts only objects and arrays; bare scalars such as "42" read
// as text.
func isJSON(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "{") && !strings.HasPrefix(trimmed, "[") {
		return false
	}
	return json.Valid([]byte(trimmed))
}

func isXML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<?xml")
}

func isMarkdown(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "#") ||
		strings.Contains(text, "## ") ||
		boldPattern.MatchString(text)
}

func isReact(text string) bool {
	if !strings.Contains(text, "React") {
		return false
	}
	if !strings.Contains(text, "Component") && !jsxPattern.MatchString(text) {
		return false
	}
	return strings.Contains(text, "const ") || strings.Contains(text, "=>")
}

func isJavaScript(text string) bool {
	return containsAny(text, "const ", "function ", "=>")
}

func isPython(text string) bool {
	return containsAny(text, "def ", "import ", "class ")
}

func isCSS(text string) bool {
	return strings.Contains(text, "{") && containsAny(text, "color:", "display:", "margin:")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
