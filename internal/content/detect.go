package content

import (
	"strings"

	"github.com/sha1n/contentkit/internal/domain"
)

// Decode converts bytes to text, dropping invalid UTF-8 sequences.
func Decode(b []byte) string {
	return strings.ToValidUTF8(string(b), "")
}

// Detect determines the kind of raw content. Image signatures take
// precedence, then the NUL-byte binary heuristic, then text rules.
// It never fails; unrecognized content resolves to text or binary.
func Detect(b []byte) domain.Kind {
	if sub, ok := SniffImage(b); ok {
		return domain.ImageKind(sub)
	}
	if IsBinary(b) {
		return domain.KindBinary
	}
	return ClassifyText(Decode(b))
}

// Analysis is the metadata derived from one piece of content.
type Analysis struct {
	domain.Kind
	Description string
	Preview     string
	// Text is the decoded content; empty for images.
	Text string
}

// Analyze runs detection, description and preview over raw bytes.
// previewLength <= 0 selects DefaultPreviewLength.
func Analyze(b []byte, previewLength int) Analysis {
	kind := Detect(b)

	var text string
	if kind.Type != domain.TypeImage {
		text = Decode(b)
	}

	return Analysis{
		Kind:        kind,
		Description: Describe(kind, text),
		Preview:     Preview(kind.Type, text, previewLength),
		Text:        text,
	}
}
