package app

import "github.com/spf13/pflag"

// RegisterGlobalFlags registers flags shared by every command
func RegisterGlobalFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "Config file (YAML, JSON or TOML)")
}

// RegisterServerFlags registers the serve command flags
func RegisterServerFlags(flags *pflag.FlagSet) {
	flags.StringP("transport", "t", "", "Transport type: stdio or sse")
	flags.StringP("host", "H", "", "Host for SSE transport")
	flags.IntP("port", "p", 0, "Port for SSE transport")
	flags.StringP("auth-type", "a", "", "Authentication type: none, basic, or apikey")
	flags.StringP("auth-basic-username", "u", "", "Basic auth username")
	flags.StringP("auth-basic-password", "P", "", "Basic auth password")
	flags.StringSliceP("auth-api-keys", "k", nil, "API keys (comma-separated)")
	flags.StringP("output", "o", "", "Site directory to serve and read the search index from")
	flags.String("index-dir", "", "Search index directory (default <output>/.search)")
	flags.Int("max-results", 0, "Maximum search results per query")
}

// RegisterSiteFlags registers the site command flags
func RegisterSiteFlags(flags *pflag.FlagSet) {
	flags.StringP("source", "s", "", "Directory to scan for content files")
	flags.StringP("output", "o", "", "Directory to write the website to")
	flags.String("content-filename", "", "Name of the content files to collect")
	flags.StringSliceP("exclude", "e", nil, "Additional exclude patterns (comma-separated)")
	flags.Int64("max-file-size", 0, "Skip content files larger than this many bytes")
	flags.Int("preview-length", 0, "Preview length in characters")
	flags.IntP("workers", "w", 0, "Number of concurrent page writers")
	flags.Bool("index", true, "Build the search index")
	flags.String("index-dir", "", "Search index directory (default <output>/.search)")
}

// RegisterNotesFlags registers flags of the notes and convert commands
func RegisterNotesFlags(flags *pflag.FlagSet) {
	flags.StringP("notes-dir", "n", "", "Notes workspace directory")
	flags.String("themes-config", "", "Themes config file")
	flags.String("index-template", "", "Template overriding the notes index page")
	flags.Duration("lock-timeout", 0, "How long to wait for the notes lock")
}

// RegisterSearchFlags registers the search command flags
func RegisterSearchFlags(flags *pflag.FlagSet) {
	flags.StringP("output", "o", "", "Site directory holding the search index")
	flags.String("index-dir", "", "Search index directory (default <output>/.search)")
	flags.Int("max-results", 0, "Maximum number of results")
	flags.String("type", "", "Filter by content type")
	flags.String("subtype", "", "Filter by content subtype")
}
