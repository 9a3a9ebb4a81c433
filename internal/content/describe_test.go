package content

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/sha1n/contentkit/internal/domain"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		kind domain.Kind
		text string
		want string
	}{
		{"markdown heading", domain.KindMarkdown, "# Hello World\nbody", "Hello World"},
		{"markdown heading after preamble", domain.KindMarkdown, "intro\n## Sub\n#  Main Title  \n", "Main Title"},
		{"markdown without heading", domain.KindMarkdown, "no heading here", "Markdown Document"},
		{"markdown blank heading first", domain.KindMarkdown, "#  \n# Real Title\n", "Real Title"},
		{"markdown subheading only", domain.KindMarkdown, "## Only Sub", "Markdown Document"},
		{"html title", domain.KindHTML, "<html><head><TITLE>My Page</TITLE></head></html>", "My Page"},
		{"html title with attributes and newlines", domain.KindHTML, "<title lang=\"en\">\n  Multi\n  Line\n</title>", "Multi Line"},
		{"html missing close tag", domain.KindHTML, "<html><title>Broken", "HTML Page"},
		{"html empty title", domain.KindHTML, "<html><title>  </title></html>", "HTML Page"},
		{"react component", domain.CodeKind(domain.SubtypeReact), "const TodoList = () => <ul/>", "Component: TodoList"},
		{"react fallback", domain.CodeKind(domain.SubtypeReact), "React.render(x)", "React Code"},
		{"python function", domain.CodeKind(domain.SubtypePython), "import os\n\ndef main(args):\n    pass", "Function: main"},
		{"python fallback", domain.CodeKind(domain.SubtypePython), "import os", "Python Code"},
		{"javascript", domain.CodeKind(domain.SubtypeJavaScript), "const x = 1", "JavaScript Code"},
		{"css", domain.CodeKind(domain.SubtypeCSS), "a { color: red }", "CSS Stylesheet"},
		{"jpeg", domain.ImageKind(domain.SubtypeJPEG), "", "JPEG Image"},
		{"webp", domain.ImageKind(domain.SubtypeWebP), "", "WEBP Image"},
		{"json", domain.KindJSON, "{}", "JSON Data"},
		{"xml", domain.KindXML, "<?xml?>", "XML Document"},
		{"text", domain.KindText, "hello", "Text Document"},
		{"binary", domain.KindBinary, "\x00", "Binary File"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Describe(tt.kind, tt.text); got != tt.want {
				t.Errorf("Describe() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDescribe_Truncates(t *testing.T) {
	title := strings.Repeat("A", 100)
	got := Describe(domain.KindMarkdown, "# "+title)

	if utf8.RuneCountInString(got) != MaxDescriptionLength {
		t.Errorf("Expected %d characters, got %d", MaxDescriptionLength, utf8.RuneCountInString(got))
	}
	if !strings.HasSuffix(got, TruncationSuffix) {
		t.Errorf("Expected truncation suffix, got %q", got)
	}
	if !strings.HasPrefix(got, strings.Repeat("A", MaxDescriptionLength-len(TruncationSuffix))) {
		t.Errorf("Unexpected prefix: %q", got)
	}
}

func TestDescribe_ExactLimitNotTruncated(t *testing.T) {
	title := strings.Repeat("b", MaxDescriptionLength)
	if got := Describe(domain.KindMarkdown, "# "+title); got != title {
		t.Errorf("Describe() = %q, want untouched title", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in    string
		limit int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"héllo wörld", 8, "héllo..."},
		{"abcdef", 3, "abc"},
		{"abcdef", 2, "ab"},
		{"abcdef", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Truncate(tt.in, tt.limit); got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.limit, got, tt.want)
			}
		})
	}
}
