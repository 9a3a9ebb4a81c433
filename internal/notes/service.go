package notes

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/sha1n/contentkit/internal/config"
	"github.com/sha1n/contentkit/internal/theme"
)

// StylesDirName is the stylesheet directory inside the notes directory
const StylesDirName = "styles"

// ErrNoMatch indicates that no registered entry matched a remove identifier
var ErrNoMatch = errors.New("no matching notes")

//go:embed styles/*.css
var defaultStyles embed.FS

// AddResult describes the outcome of Add
type AddResult struct {
	Entry    Entry
	Existing bool
}

// Service manages a notes workspace: the registry, its index page and styles
type Service struct {
	dir           string
	indexTemplate string
	themesConfig  string
	lockTimeout   time.Duration
	catalog       *theme.Catalog

	// Now returns the current time; overridable in tests
	Now    func() time.Time
	Logger *slog.Logger
}

// NewService initializes the workspace described by s and loads its theme catalog
func NewService(s *config.NotesSettings) (*Service, error) {
	svc := &Service{
		dir:           s.Dir,
		indexTemplate: s.IndexTemplate,
		themesConfig:  s.ThemesConfig,
		lockTimeout:   s.LockTimeout,
		Now:           time.Now,
		Logger:        slog.Default(),
	}
	if svc.lockTimeout <= 0 {
		svc.lockTimeout = 10 * time.Second
	}

	if err := svc.installWorkspace(); err != nil {
		return nil, err
	}

	catalog, err := svc.LoadCatalog(StylesDirName)
	if err != nil {
		return nil, err
	}
	svc.catalog = catalog

	for _, w := range svc.ValidateAssets() {
		svc.Logger.Warn("Notes asset check", "warning", w)
	}

	if err := svc.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return svc, nil
}

// Dir returns the notes directory
func (s *Service) Dir() string { return s.dir }

// StylesDir returns the stylesheet directory
func (s *Service) StylesDir() string { return filepath.Join(s.dir, StylesDirName) }

// Catalog returns the theme catalog used by the index, with stylesheet
// URLs relative to the notes directory
func (s *Service) Catalog() *theme.Catalog { return s.catalog }

// LoadCatalog resolves the workspace themes with stylesheet URLs under cssBase
func (s *Service) LoadCatalog(cssBase string) (*theme.Catalog, error) {
	discovered, err := theme.Discover(s.StylesDir(), cssBase)
	if err != nil {
		return nil, err
	}
	return theme.LoadConfig(s.themesConfig, discovered)
}

// StylesURL returns the file:// URL of the stylesheet directory
func (s *Service) StylesURL() string {
	abs, err := filepath.Abs(s.StylesDir())
	if err != nil {
		abs = s.StylesDir()
	}
	return FileURL(abs)
}

func (s *Service) registryPath() string { return filepath.Join(s.dir, RegistryFilename) }
func (s *Service) indexPath() string    { return filepath.Join(s.dir, IndexFilename) }
func (s *Service) lockPath() string     { return filepath.Join(s.dir, LockFilename) }

// Initialize creates the registry and index when they are absent
func (s *Service) Initialize(ctx context.Context) error {
	if err := s.installWorkspace(); err != nil {
		return err
	}
	return s.withLock(ctx, func() error {
		if _, err := os.Stat(s.registryPath()); os.IsNotExist(err) {
			if err := (&Registry{}).Save(s.registryPath()); err != nil {
				return err
			}
		}
		if _, err := os.Stat(s.indexPath()); os.IsNotExist(err) {
			r, err := LoadRegistry(s.registryPath())
			if err != nil {
				return err
			}
			return s.writeIndex(r)
		}
		return nil
	})
}

// installWorkspace creates the notes directory and installs the default
// styles when core.css or index.css is missing. Existing files are kept.
func (s *Service) installWorkspace() error {
	if err := os.MkdirAll(s.StylesDir(), 0755); err != nil {
		return fmt.Errorf("failed to create notes directory: %w", err)
	}
	if fileExists(filepath.Join(s.StylesDir(), "core.css")) && fileExists(filepath.Join(s.StylesDir(), "index.css")) {
		return nil
	}

	entries, err := fs.ReadDir(defaultStyles, StylesDirName)
	if err != nil {
		return fmt.Errorf("failed to read embedded styles: %w", err)
	}
	for _, e := range entries {
		dst := filepath.Join(s.StylesDir(), e.Name())
		if fileExists(dst) {
			continue
		}
		data, err := defaultStyles.ReadFile(path.Join(StylesDirName, e.Name()))
		if err != nil {
			return fmt.Errorf("failed to read embedded style %s: %w", e.Name(), err)
		}
		if err := os.WriteFile(dst, data, 0644); err != nil {
			return fmt.Errorf("failed to install style %s: %w", e.Name(), err)
		}
	}
	return nil
}

// Add registers the document at p. The title is title when non-empty, else
// the document's HTML title, else its file name stem.
func (s *Service) Add(ctx context.Context, p, title string) (AddResult, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return AddResult{}, fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return AddResult{}, fmt.Errorf("file not found: %s", abs)
	}
	if info.IsDir() {
		return AddResult{}, fmt.Errorf("not a file: %s", abs)
	}

	if title == "" {
		if title, err = ExtractTitle(abs); err != nil {
			return AddResult{}, err
		}
	}

	var result AddResult
	err = s.withLock(ctx, func() error {
		r, err := LoadRegistry(s.registryPath())
		if err != nil {
			return err
		}
		result.Entry, result.Existing = r.Add(Entry{Title: title, Path: abs, Added: s.Now()})
		if result.Existing {
			return nil
		}
		if err := r.Save(s.registryPath()); err != nil {
			return err
		}
		return s.writeIndex(r)
	})
	if err != nil {
		return AddResult{}, err
	}

	if !result.Existing {
		s.Logger.Info("Registered note", "title", result.Entry.Title, "path", result.Entry.Path)
	}
	return result, nil
}

// List returns the registered entries, newest first
func (s *Service) List() ([]Entry, error) {
	r, err := LoadRegistry(s.registryPath())
	if err != nil {
		return nil, err
	}
	return r.Newest(), nil
}

// Remove unregisters every entry matching identifier and returns how many
// were removed. Returns ErrNoMatch when nothing matched.
func (s *Service) Remove(ctx context.Context, identifier string) (int, error) {
	var removed []Entry
	err := s.withLock(ctx, func() error {
		r, err := LoadRegistry(s.registryPath())
		if err != nil {
			return err
		}
		if removed = r.Remove(identifier); len(removed) == 0 {
			return ErrNoMatch
		}
		if err := r.Save(s.registryPath()); err != nil {
			return err
		}
		return s.writeIndex(r)
	})
	if err != nil {
		return 0, err
	}

	for _, e := range removed {
		s.Logger.Info("Removed note", "title", e.Title, "path", e.Path)
	}
	return len(removed), nil
}

// Regenerate rewrites the index from the registry and returns the entry count
func (s *Service) Regenerate(ctx context.Context) (int, error) {
	var count int
	err := s.withLock(ctx, func() error {
		r, err := LoadRegistry(s.registryPath())
		if err != nil {
			return err
		}
		count = len(r.Entries)
		return s.writeIndex(r)
	})
	return count, err
}

// Rebuild reinstalls missing default styles, then regenerates the index
func (s *Service) Rebuild(ctx context.Context) (int, error) {
	if err := s.installWorkspace(); err != nil {
		return 0, err
	}
	return s.Regenerate(ctx)
}

// ValidateAssets reports missing stylesheet assets
func (s *Service) ValidateAssets() []string {
	var warnings []string
	if !fileExists(s.StylesDir()) {
		return append(warnings, "styles directory not found: "+s.StylesDir())
	}
	for _, name := range []string{"core.css", "index.css"} {
		if p := filepath.Join(s.StylesDir(), name); !fileExists(p) {
			warnings = append(warnings, "stylesheet not found: "+p)
		}
	}
	return warnings
}

// writeIndex renders the themed index, falling back to the minimal one
func (s *Service) writeIndex(r *Registry) error {
	ir := &IndexRenderer{Catalog: s.catalog, CSSBase: StylesDirName, TemplatePath: s.indexTemplate}
	content, err := ir.Render(r, s.Now())
	if err != nil {
		s.Logger.Warn("Themed index rendering failed, writing minimal index", "error", err)
		content = RenderFallbackIndex(r)
	}
	if err := writeFileAtomic(s.indexPath(), []byte(content)); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}
	return nil
}

func (s *Service) withLock(ctx context.Context, fn func() error) error {
	lock := NewFileLock(s.lockPath())
	if err := lock.Lock(ctx, s.lockTimeout); err != nil {
		return fmt.Errorf("failed to lock notes registry: %w", err)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.Logger.Warn("Failed to release notes lock", "error", err)
		}
	}()
	return fn()
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
