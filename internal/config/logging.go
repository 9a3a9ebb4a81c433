package config

import (
	"context"
	"log/slog"
)

// Log logs the resolved settings in a granular way, skipping irrelevant ones
func Log(s *Settings) {
	LogWithLogger(s, slog.Default())
}

// LogWithLogger logs the resolved settings using the provided logger
func LogWithLogger(s *Settings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: transport", "value", s.Transport)
	if s.Transport == "sse" {
		logger.InfoContext(ctx, "Config: host", "value", s.Host)
		logger.InfoContext(ctx, "Config: port", "value", s.Port)
	}

	logger.InfoContext(ctx, "Config: auth.type", "value", s.Auth.Type)
	switch s.Auth.Type {
	case AuthTypeBasic:
		logger.InfoContext(ctx, "Config: auth.basic.username", "value", s.Auth.Basic.Username)
		logger.InfoContext(ctx, "Config: auth.basic.password", "value", "****")
	case AuthTypeAPIKey:
		logger.InfoContext(ctx, "Config: auth.api_keys", "count", len(s.Auth.APIKeys))
	}

	LogSite(&s.Site, logger)
}

// LogSite logs the site generator settings
func LogSite(s *SiteSettings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: site.source_dir", "value", s.SourceDir)
	logger.InfoContext(ctx, "Config: site.output_dir", "value", s.OutputDir)
	logger.InfoContext(ctx, "Config: site.content_filename", "value", s.ContentFilename)
	if len(s.Exclude) > 0 {
		logger.InfoContext(ctx, "Config: site.exclude", "value", s.Exclude)
	}
	logger.InfoContext(ctx, "Config: site.workers", "value", s.Workers)
	if s.Index {
		logger.InfoContext(ctx, "Config: site.index_dir", "value", s.IndexDir)
	}
}

// LogNotes logs the notes registry settings
func LogNotes(n *NotesSettings, logger *slog.Logger) {
	ctx := context.Background()
	logger.InfoContext(ctx, "Config: notes.dir", "value", n.Dir)
	if n.ThemesConfig != "" {
		logger.InfoContext(ctx, "Config: notes.themes_config", "value", n.ThemesConfig)
	}
	if n.IndexTemplate != "" {
		logger.InfoContext(ctx, "Config: notes.index_template", "value", n.IndexTemplate)
	}
}

// AuthSettingsLogValue returns a slog.Value for AuthSettings with masked data
func AuthSettingsLogValue(s AuthSettings) slog.Value {
	keys := make([]string, len(s.APIKeys))
	for i := range s.APIKeys {
		keys[i] = "****"
	}
	return slog.GroupValue(
		slog.String("type", s.Type),
		slog.Any("basic", BasicAuthSettingsLogValue(s.Basic)),
		slog.Any("api_keys", keys),
	)
}

// BasicAuthSettingsLogValue returns a slog.Value for BasicAuthSettings with masked data
func BasicAuthSettingsLogValue(s BasicAuthSettings) slog.Value {
	return slog.GroupValue(
		slog.String("username", s.Username),
		slog.String("password", "****"),
	)
}

// SettingsLogValue returns a slog.Value for Settings with masked data
func SettingsLogValue(s Settings) slog.Value {
	return slog.GroupValue(
		slog.String("transport", s.Transport),
		slog.String("host", s.Host),
		slog.Int("port", s.Port),
		slog.Any("auth", AuthSettingsLogValue(s.Auth)),
		slog.Group("site",
			slog.String("source_dir", s.Site.SourceDir),
			slog.String("output_dir", s.Site.OutputDir),
		),
		slog.Group("notes",
			slog.String("dir", s.Notes.Dir),
		),
	)
}
