package domain

// SearchDocument represents an indexed content record.
// It is the primary data structure stored in the Bleve search index.
type SearchDocument struct {
	// ID is the record ID; it doubles as the Bleve document ID.
	ID string `json:"id"`

	// Name is the record's display name.
	Name string `json:"name"`

	Type    string `json:"type"`
	Subtype string `json:"subtype"`

	Description string `json:"description"`
	Preview     string `json:"preview"`

	// Content is the decoded text used for full-text search and snippets.
	// Empty for images and binaries.
	Content string `json:"content"`

	// Symbols lists identifiers extracted from code records.
	Symbols []string `json:"symbols,omitempty"`

	// Page is the generated page filename, relative to the site root.
	Page string `json:"page"`

	// SourcePath is the path of the originating content file, relative to the source root.
	SourcePath string `json:"source_path"`
}

// Bleve field name constants for consistent field references in queries and mappings.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldType        = "type"
	FieldSubtype     = "subtype"
	FieldDescription = "description"
	FieldPreview     = "preview"
	FieldContent     = "content"
	FieldSymbols     = "symbols"
	FieldPage        = "page"
	FieldSourcePath  = "source_path"
)
