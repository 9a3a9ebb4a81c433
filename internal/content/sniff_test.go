package content

import (
	"testing"

	"github.com/sha1n/contentkit/internal/domain"
)

func TestSniffImage(t *testing.T) {
	webp := append([]byte("RIFF\x00\x00\x00\x00WEBP"), []byte("VP8 ")...)

	tests := []struct {
		name    string
		input   []byte
		want    domain.Subtype
		matched bool
	}{
		{"jpeg exact signature", []byte{0xFF, 0xD8, 0xFF}, domain.SubtypeJPEG, true},
		{"jpeg with payload", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10}, domain.SubtypeJPEG, true},
		{"png", []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}, domain.SubtypePNG, true},
		{"gif87a", []byte("GIF87a"), domain.SubtypeGIF, true},
		{"gif89a", []byte("GIF89a"), domain.SubtypeGIF, true},
		{"webp", webp, domain.SubtypeWebP, true},
		{"riff but not webp", []byte("RIFF\x00\x00\x00\x00WAVEfmt "), "", false},
		{"riff too short", []byte("RIFF\x00\x00\x00\x00WEB"), "", false},
		{"truncated jpeg", []byte{0xFF, 0xD8}, "", false},
		{"empty", nil, "", false},
		{"text", []byte("hello"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SniffImage(tt.input)
			if ok != tt.matched {
				t.Fatalf("SniffImage() matched = %v, want %v", ok, tt.matched)
			}
			if got != tt.want {
				t.Errorf("SniffImage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsBinary(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  bool
	}{
		{"empty", nil, false},
		{"plain text", []byte("just some text\n"), false},
		{"nul at start", []byte{0x00, 'a', 'b'}, true},
		{"nul in middle", []byte("ab\x00cd"), true},
		{"invalid utf8 without nul", []byte{0xC3, 0x28, 'a'}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBinary(tt.input); got != tt.want {
				t.Errorf("IsBinary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsBinary_OnlyInspectsPrefix(t *testing.T) {
	data := make([]byte, binarySniffLen+10)
	for i := range data {
		data[i] = 'a'
	}
	data[binarySniffLen+5] = 0

	if IsBinary(data) {
		t.Error("NUL byte beyond the sniff window should not mark content as binary")
	}
}
