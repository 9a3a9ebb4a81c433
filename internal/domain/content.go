package domain

import "strings"

// Type is the primary category of a content file.
type Type string

// Subtype refines a Type.
type Subtype string

// Primary content types. The set is closed; detection never produces
// anything outside it.
const (
	TypeImage    Type = "image"
	TypeHTML     Type = "html"
	TypeMarkdown Type = "markdown"
	TypeCode     Type = "code"
	TypeJSON     Type = "json"
	TypeXML      Type = "xml"
	TypeText     Type = "text"
	TypeBinary   Type = "binary"
)

// Subtypes.
const (
	SubtypeJPEG       Subtype = "jpeg"
	SubtypePNG        Subtype = "png"
	SubtypeGIF        Subtype = "gif"
	SubtypeWebP       Subtype = "webp"
	SubtypeHTML       Subtype = "html"
	SubtypeMarkdown   Subtype = "markdown"
	SubtypeReact      Subtype = "react"
	SubtypeJavaScript Subtype = "javascript"
	SubtypePython     Subtype = "python"
	SubtypeCSS        Subtype = "css"
	SubtypeJSON       Subtype = "json"
	SubtypeXML        Subtype = "xml"
	SubtypeText       Subtype = "text"
	SubtypeUnknown    Subtype = "unknown"
)

// Types lists every primary type in display order.
var Types = []Type{
	TypeMarkdown, TypeHTML, TypeCode, TypeImage,
	TypeText, TypeJSON, TypeXML, TypeBinary,
}

var validSubtypes = map[Type][]Subtype{
	TypeImage:    {SubtypeJPEG, SubtypePNG, SubtypeGIF, SubtypeWebP},
	TypeHTML:     {SubtypeHTML},
	TypeMarkdown: {SubtypeMarkdown},
	TypeCode:     {SubtypeReact, SubtypeJavaScript, SubtypePython, SubtypeCSS},
	TypeJSON:     {SubtypeJSON},
	TypeXML:      {SubtypeXML},
	TypeText:     {SubtypeText},
	TypeBinary:   {SubtypeUnknown},
}

// Kind is the (type, subtype) pair assigned to a piece of content.
type Kind struct {
	Type    Type    `json:"type"`
	Subtype Subtype `json:"subtype"`
}

// Common kinds.
var (
	KindHTML     = Kind{TypeHTML, SubtypeHTML}
	KindMarkdown = Kind{TypeMarkdown, SubtypeMarkdown}
	KindJSON     = Kind{TypeJSON, SubtypeJSON}
	KindXML      = Kind{TypeXML, SubtypeXML}
	KindText     = Kind{TypeText, SubtypeText}
	KindBinary   = Kind{TypeBinary, SubtypeUnknown}
)

// CodeKind returns the code kind for the given dialect.
func CodeKind(s Subtype) Kind {
	return Kind{Type: TypeCode, Subtype: s}
}

// ImageKind returns the image kind for the given format.
func ImageKind(s Subtype) Kind {
	return Kind{Type: TypeImage, Subtype: s}
}

// Valid reports whether the pair belongs to the closed enumeration.
func (k Kind) Valid() bool {
	for _, s := range validSubtypes[k.Type] {
		if s == k.Subtype {
			return true
		}
	}
	return false
}

func (k Kind) String() string {
	return string(k.Type) + "/" + string(k.Subtype)
}

// Label returns the upper-cased type, as shown on badges.
func (t Type) Label() string {
	return strings.ToUpper(string(t))
}

// ContentRecord is the classification and metadata result for one
// discovered content file. Records are built once and never mutated.
type ContentRecord struct {
	// ID is a UUIDv5 of the slash-separated source path. It is stable
	// across runs and is used as the page filename stem.
	ID string `json:"id"`

	// Name is the directory holding the content file, relative to the
	// walked root. Example: "notes/2024-01".
	Name string `json:"name"`

	// SourcePath is the content file path relative to the walked root.
	SourcePath string `json:"source_path"`

	Kind

	// Description is a short label, at most 60 characters.
	Description string `json:"description"`

	// Preview is normalized text, at most 150 characters.
	Preview string `json:"preview"`

	Size int64 `json:"size"`

	// Raw and Text are kept only while rendering.
	Raw  []byte `json:"-"`
	Text string `json:"-"`
}

// PageName returns the output filename of the record's page.
func (r *ContentRecord) PageName() string {
	return r.ID + ".html"
}
