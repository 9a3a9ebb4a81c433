package content

import (
	"strings"

	"github.com/sha1n/contentkit/internal/domain"
)

const (
	// DefaultPreviewLength is the stored preview cap, suffix included.
	DefaultPreviewLength = 150

	// ImagePlaceholder stands in for image previews.
	ImagePlaceholder = "[Image Preview]"
)

// Preview normalizes whitespace and caps the result at maxLength runes.
// Images always get ImagePlaceholder; empty text yields "".
func Preview(t domain.Type, text string, maxLength int) string {
	if t == domain.TypeImage {
		return ImagePlaceholder
	}
	if maxLength <= 0 {
		maxLength = DefaultPreviewLength
	}
	return Truncate(strings.Join(strings.Fields(text), " "), maxLength)
}
