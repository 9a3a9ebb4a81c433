package content

import (
	"bytes"
	"testing"

	"github.com/sha1n/contentkit/internal/domain"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
		want  domain.Kind
	}{
		{"jpeg exactly three bytes", []byte{0xFF, 0xD8, 0xFF}, domain.ImageKind(domain.SubtypeJPEG)},
		{"jpeg followed by html", append([]byte{0xFF, 0xD8, 0xFF}, []byte("<html>")...), domain.ImageKind(domain.SubtypeJPEG)},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00"), domain.ImageKind(domain.SubtypePNG)},
		{"html with markdown and python markers", []byte("<HTML>\n**bold**\ndef f(): pass"), domain.KindHTML},
		{"json containing import", []byte(`{"a": 1, "b": "import os"}`), domain.KindJSON},
		{"nul bytes", []byte{0x01, 0x02, 0x00, 0x03}, domain.KindBinary},
		{"empty", []byte{}, domain.KindText},
		{"nil", nil, domain.KindText},
		{"invalid utf8 text", []byte{0xC3, 0x28, 'h', 'i'}, domain.KindText},
		{"markdown with invalid bytes", []byte("# Title\xff\xfe\nbody"), domain.KindMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Detect(tt.input)
			if got != tt.want {
				t.Errorf("Detect() = %s, want %s", got, tt.want)
			}
			if !got.Valid() {
				t.Errorf("Detect() returned kind outside the enumeration: %s", got)
			}
		})
	}
}

func TestDetect_JPEGPrefixAnyLength(t *testing.T) {
	for _, n := range []int{0, 1, 16, 4096} {
		data := append([]byte{0xFF, 0xD8, 0xFF}, bytes.Repeat([]byte{'x'}, n)...)
		if got := Detect(data); got != domain.ImageKind(domain.SubtypeJPEG) {
			t.Errorf("Detect(jpeg + %d bytes) = %s", n, got)
		}
	}
}

func TestDecode_DropsInvalidSequences(t *testing.T) {
	got := Decode([]byte("a\xffb\xc3\x28c"))
	if got != "ab(c" {
		t.Errorf("Decode() = %q, want %q", got, "ab(c")
	}
}

func TestAnalyze(t *testing.T) {
	a := Analyze([]byte("# Hello World\nbody text"), 0)

	if a.Kind != domain.KindMarkdown {
		t.Errorf("Kind = %s, want markdown", a.Kind)
	}
	if a.Description != "Hello World" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Preview != "# Hello World body text" {
		t.Errorf("Preview = %q", a.Preview)
	}
	if a.Text != "# Hello World\nbody text" {
		t.Errorf("Text = %q", a.Text)
	}
}

func TestAnalyze_Image(t *testing.T) {
	a := Analyze([]byte("GIF89a\x01\x00\x01\x00"), 0)

	if a.Kind != domain.ImageKind(domain.SubtypeGIF) {
		t.Errorf("Kind = %s, want image/gif", a.Kind)
	}
	if a.Description != "GIF Image" {
		t.Errorf("Description = %q, want 'GIF Image'", a.Description)
	}
	if a.Preview != ImagePlaceholder {
		t.Errorf("Preview = %q, want placeholder", a.Preview)
	}
	if a.Text != "" {
		t.Errorf("Text should be empty for images, got %q", a.Text)
	}
}

func TestAnalyze_Empty(t *testing.T) {
	a := Analyze(nil, 0)

	if a.Kind != domain.KindText {
		t.Errorf("Kind = %s, want text/text", a.Kind)
	}
	if a.Description != "Text Document" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Preview != "" {
		t.Errorf("Preview = %q, want empty", a.Preview)
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	inputs := [][]byte{
		[]byte("<html><title>Page</title></html>"),
		[]byte("const App = () => <div/>; // React Component"),
		[]byte("def run(x):\n    return x"),
		{0xFF, 0xD8, 0xFF, 0x00},
		{0x00, 0x01},
		bytes.Repeat([]byte("lorem ipsum "), 100),
	}

	for _, in := range inputs {
		first := Analyze(in, 0)
		second := Analyze(in, 0)
		if first != second {
			t.Errorf("Analyze is not idempotent: %+v != %+v", first, second)
		}
	}
}
