package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Auth type constants
const (
	AuthTypeNone   = "none"
	AuthTypeBasic  = "basic"
	AuthTypeAPIKey = "apikey"
)

// EnvPrefix is the prefix of all environment variables read by contentkit.
const EnvPrefix = "CONTENTKIT"

// SearchIndexDirName is the default search index directory inside the site output.
const SearchIndexDirName = ".search"

// AuthSettings configuration for authentication
type AuthSettings struct {
	Type    string            `mapstructure:"type"` // AuthTypeNone, AuthTypeBasic, or AuthTypeAPIKey
	Basic   BasicAuthSettings `mapstructure:"basic"`
	APIKeys []string          `mapstructure:"api_keys"`
}

// BasicAuthSettings configuration for basic auth
type BasicAuthSettings struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// SiteSettings configuration for the static site generator
type SiteSettings struct {
	SourceDir       string   `mapstructure:"source_dir"`
	OutputDir       string   `mapstructure:"output_dir"`
	ContentFilename string   `mapstructure:"content_filename"`
	Exclude         []string `mapstructure:"exclude"`
	MaxFileSize     int64    `mapstructure:"max_file_size"`
	PreviewLength   int      `mapstructure:"preview_length"`
	Workers         int      `mapstructure:"workers"`
	Index           bool     `mapstructure:"index"`
	IndexDir        string   `mapstructure:"index_dir"`
}

// NotesSettings configuration for the notes registry
type NotesSettings struct {
	Dir           string        `mapstructure:"dir"`
	ThemesConfig  string        `mapstructure:"themes_config"`
	IndexTemplate string        `mapstructure:"index_template"`
	LockTimeout   time.Duration `mapstructure:"lock_timeout"`
}

// SearchSettings configuration for querying the search index
type SearchSettings struct {
	MaxResults int `mapstructure:"max_results"`
}

// Settings application settings
type Settings struct {
	Transport string         `mapstructure:"transport"`
	Host      string         `mapstructure:"host"`
	Port      int            `mapstructure:"port"`
	Auth      AuthSettings   `mapstructure:"auth"`
	Site      SiteSettings   `mapstructure:"site"`
	Notes     NotesSettings  `mapstructure:"notes"`
	Search    SearchSettings `mapstructure:"search"`
}

// flagBindings maps settings keys to CLI flag names.
var flagBindings = map[string]string{
	"transport":             "transport",
	"host":                  "host",
	"port":                  "port",
	"auth.type":             "auth-type",
	"auth.basic.username":   "auth-basic-username",
	"auth.basic.password":   "auth-basic-password",
	"auth.api_keys":         "auth-api-keys",
	"site.source_dir":       "source",
	"site.output_dir":       "output",
	"site.content_filename": "content-filename",
	"site.exclude":          "exclude",
	"site.max_file_size":    "max-file-size",
	"site.preview_length":   "preview-length",
	"site.workers":          "workers",
	"site.index":            "index",
	"site.index_dir":        "index-dir",
	"notes.dir":             "notes-dir",
	"notes.themes_config":   "themes-config",
	"notes.index_template":  "index-template",
	"notes.lock_timeout":    "lock-timeout",
	"search.max_results":    "max-results",
}

// LoadSettings loads settings from environment variables and optional .env file
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > config file (--config, or
// .env in the working directory) > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	// Server defaults
	v.SetDefault("transport", "stdio")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 8080)
	v.SetDefault("auth.type", AuthTypeNone)

	// Site defaults
	v.SetDefault("site.source_dir", ".")
	v.SetDefault("site.output_dir", "website")
	v.SetDefault("site.content_filename", "content")
	v.SetDefault("site.exclude", []string{})
	v.SetDefault("site.max_file_size", int64(20*1024*1024)) // 20MB
	v.SetDefault("site.preview_length", 150)
	v.SetDefault("site.workers", 4)
	v.SetDefault("site.index", true)
	v.SetDefault("site.index_dir", "")

	// Notes defaults
	v.SetDefault("notes.dir", defaultNotesDir())
	v.SetDefault("notes.themes_config", "")
	v.SetDefault("notes.index_template", "")
	v.SetDefault("notes.lock_timeout", 10*time.Second)

	v.SetDefault("search.max_results", 20)

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind nested keys explicitly so Unmarshal sees env-only values
	for key := range flagBindings {
		_ = v.BindEnv(key, EnvPrefix+"_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")))
	}

	configFile := ""
	// Bind CLI flags if provided (highest priority)
	if flags != nil {
		for key, name := range flagBindings {
			if f := flags.Lookup(name); f != nil {
				_ = v.BindPFlag(key, f)
			}
		}
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}

	if configFile != "" {
		v.SetConfigFile(expandHomeDir(configFile))
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		// Helper to look for .env file
		v.SetConfigName(".env")
		v.SetConfigType("env")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // Ignore error if .env doesn't exist
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Auth.APIKeys = splitListEnv(settings.Auth.APIKeys, EnvPrefix+"_AUTH_API_KEYS")
	settings.Site.Exclude = splitListEnv(settings.Site.Exclude, EnvPrefix+"_SITE_EXCLUDE")

	settings.Site.SourceDir = expandHomeDir(settings.Site.SourceDir)
	settings.Site.OutputDir = expandHomeDir(settings.Site.OutputDir)
	settings.Site.IndexDir = expandHomeDir(settings.Site.IndexDir)
	if settings.Site.IndexDir == "" {
		settings.Site.IndexDir = filepath.Join(settings.Site.OutputDir, SearchIndexDirName)
	}

	settings.Notes.Dir = expandHomeDir(settings.Notes.Dir)
	settings.Notes.ThemesConfig = expandHomeDir(settings.Notes.ThemesConfig)
	settings.Notes.IndexTemplate = expandHomeDir(settings.Notes.IndexTemplate)

	return &settings, nil
}

// splitListEnv handles list values supplied through an env var as a
// comma-separated string, trimming spaces and dropping empty items.
func splitListEnv(values []string, envName string) []string {
	if raw := os.Getenv(envName); raw != "" {
		if len(values) == 0 || (len(values) == 1 && strings.Contains(values[0], ",")) {
			values = strings.Split(raw, ",")
		}
	}
	for i := range values {
		values[i] = strings.TrimSpace(values[i])
	}
	return filterEmptyStrings(values)
}

// defaultNotesDir returns the default notes workspace
func defaultNotesDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "notes"
	}
	return filepath.Join(home, "notes")
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}

// filterEmptyStrings removes empty strings from a slice
func filterEmptyStrings(s []string) []string {
	var result []string
	for _, str := range s {
		if str != "" {
			result = append(result, str)
		}
	}
	return result
}

// ValidateSettings checks for conflicting configurations.
// Returns an error if the settings contain mutually exclusive or incomplete auth config.
func ValidateSettings(s *Settings) error {
	// Validate transport type
	switch s.Transport {
	case "stdio", "sse":
		// valid
	default:
		return errors.New("transport must be 'stdio' or 'sse', got: " + s.Transport)
	}

	if err := validateAuthSettings(&s.Auth); err != nil {
		return err
	}
	if err := validateSiteSettings(&s.Site); err != nil {
		return err
	}
	if err := validateNotesSettings(&s.Notes); err != nil {
		return err
	}

	if s.Search.MaxResults <= 0 {
		return errors.New("max-results must be positive")
	}

	return nil
}

func validateAuthSettings(a *AuthSettings) error {
	hasBasicCreds := a.Basic.Username != "" || a.Basic.Password != ""
	hasAPIKeys := len(a.APIKeys) > 0

	switch a.Type {
	case AuthTypeNone, "":
		if hasBasicCreds || hasAPIKeys {
			return errors.New("auth-type 'none' is incompatible with auth credentials")
		}
	case AuthTypeBasic:
		if hasAPIKeys {
			return errors.New("auth-type 'basic' is mutually exclusive with auth-api-keys")
		}
		if a.Basic.Username == "" || a.Basic.Password == "" {
			return errors.New("auth-type 'basic' requires both username and password")
		}
	case AuthTypeAPIKey:
		if hasBasicCreds {
			return errors.New("auth-type 'apikey' is mutually exclusive with basic auth credentials")
		}
		if !hasAPIKeys {
			return errors.New("auth-type 'apikey' requires at least one API key")
		}
	default:
		return errors.New("unknown auth-type: " + a.Type)
	}
	return nil
}

// validateSiteSettings validates the site generator configuration
func validateSiteSettings(s *SiteSettings) error {
	if s.SourceDir == "" {
		return errors.New("source cannot be empty")
	}
	if s.OutputDir == "" {
		return errors.New("output cannot be empty")
	}
	if s.ContentFilename == "" || strings.ContainsAny(s.ContentFilename, `/\`) {
		return errors.New("content-filename must be a plain file name")
	}
	if s.MaxFileSize <= 0 {
		return errors.New("max-file-size must be positive")
	}
	if s.PreviewLength <= 0 {
		return errors.New("preview-length must be positive")
	}
	if s.Workers <= 0 {
		return errors.New("workers must be positive")
	}
	if s.IndexDir != "" {
		if containsPath(s.IndexDir, s.SourceDir) {
			return fmt.Errorf("index-dir %s must not contain the source directory %s", s.IndexDir, s.SourceDir)
		}
		if containsPath(s.IndexDir, s.OutputDir) {
			return fmt.Errorf("index-dir %s must not contain the output directory %s", s.IndexDir, s.OutputDir)
		}
	}
	return nil
}

// containsPath reports whether dir equals parent or lies inside it
func containsPath(parent, dir string) bool {
	absParent, err := filepath.Abs(parent)
	if err != nil {
		return false
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absParent, absDir)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// validateNotesSettings validates the notes registry configuration
func validateNotesSettings(n *NotesSettings) error {
	if n.Dir == "" {
		return errors.New("notes-dir cannot be empty")
	}
	if n.LockTimeout <= 0 {
		return errors.New("lock-timeout must be positive")
	}
	return nil
}
