package content

import (
	"bytes"

	"github.com/sha1n/contentkit/internal/domain"
)

// signature is a magic-number check for one image format.
type signature struct {
	subtype domain.Subtype
	match   func(b []byte) bool
}

// imageSignatures are checked in order; the first match wins.
var imageSignatures = []signature{
	{domain.SubtypeJPEG, prefix([]byte{0xFF, 0xD8, 0xFF})},
	{domain.SubtypePNG, prefix([]byte{0x89, 'P', 'N', 'G'})},
	{domain.SubtypeGIF, prefix([]byte("GIF8"))},
	{domain.SubtypeWebP, func(b []byte) bool {
		return len(b) >= 12 && bytes.Equal(b[0:4], []byte("RIFF")) && bytes.Equal(b[8:12], []byte("WEBP"))
	}},
}

func prefix(magic []byte) func([]byte) bool {
	return func(b []byte) bool {
		return bytes.HasPrefix(b, magic)
	}
}

// SniffImage recognizes binary image formats by their leading bytes.
// Input shorter than a signature never matches.
func SniffImage(b []byte) (domain.Subtype, bool) {
	for _, sig := range imageSignatures {
		if sig.match(b) {
			return sig.subtype, true
		}
	}
	return "", false
}

// binarySniffLen is how many leading bytes IsBinary inspects.
const binarySniffLen = 512

// IsBinary checks if the content appears to be binary by looking for null bytes
// in the first 512 bytes. This is a heuristic used by git and other tools.
func IsBinary(b []byte) bool {
	return bytes.IndexByte(b[:min(len(b), binarySniffLen)], 0) >= 0
}
