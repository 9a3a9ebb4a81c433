package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/contentkit/internal/config"
	mcputil "github.com/sha1n/contentkit/internal/mcp"
	"github.com/sha1n/contentkit/internal/search"
	"github.com/spf13/pflag"
)

// ServerName is the MCP implementation name
const ServerName = "contentkit"

// RunParams contains dependencies for the serve command
type RunParams struct {
	LoadSettings      func(*pflag.FlagSet) (*config.Settings, error)
	ValidSettings     func(*config.Settings) error
	StartSSEServer    func(*mcp.Server, *config.Settings) error
	CreateServer      func(*config.Settings, string) (*mcp.Server, func(), error)
	CustomIOTransport mcp.Transport // Optional: for testing with custom IO
}

// DefaultRunParams returns production dependencies
func DefaultRunParams() RunParams {
	return RunParams{
		LoadSettings:   config.LoadSettingsWithFlags,
		ValidSettings:  config.ValidateSettings,
		StartSSEServer: StartSSEServer,
		CreateServer:   CreateMCPServer,
	}
}

// ConfigureLogging installs the process-wide text logger on stderr
func ConfigureLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

// LoadValidated loads settings with flag overrides and validates them
func LoadValidated(params RunParams, flags *pflag.FlagSet) (*config.Settings, error) {
	settings, err := params.LoadSettings(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := params.ValidSettings(settings); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return settings, nil
}

// RunWithDeps runs the MCP server with the provided dependencies
func RunWithDeps(ctx context.Context, params RunParams, flags *pflag.FlagSet, version string) error {
	settings, err := LoadValidated(params, flags)
	if err != nil {
		return err
	}

	ConfigureLogging()
	slog.Info("Starting contentkit server", "version", version)
	config.Log(settings)

	mcpServer, cleanup, err := params.CreateServer(settings, version)
	if err != nil {
		return err
	}
	if cleanup != nil {
		defer cleanup()
	}

	if settings.Transport == "stdio" {
		transport := params.CustomIOTransport
		if transport == nil {
			transport = &mcp.StdioTransport{}
		}
		return mcpServer.Run(ctx, transport)
	}

	slog.Info("Starting SSE server", "host", settings.Host, "port", settings.Port)
	return params.StartSSEServer(mcpServer, settings)
}

// CreateMCPServer creates the MCP server over the site's search index.
// A missing index leaves the tools registered but unavailable.
func CreateMCPServer(settings *config.Settings, version string) (*mcp.Server, func(), error) {
	cfg := mcputil.ServerConfig{
		Name:       ServerName,
		Version:    version,
		MaxResults: settings.Search.MaxResults,
	}

	var cleanup func()
	searcher, err := search.OpenSearcher(settings.Site.IndexDir)
	switch {
	case errors.Is(err, search.ErrIndexNotFound):
		slog.Warn("Search index not found, content tools are disabled", "dir", settings.Site.IndexDir)
	case err != nil:
		return nil, nil, fmt.Errorf("failed to open search index: %w", err)
	default:
		cfg.Index = searcher
		cleanup = func() {
			if err := searcher.Close(); err != nil {
				slog.Error("Failed to close search index", "error", err)
			}
		}
	}

	return mcputil.CreateServer(cfg), cleanup, nil
}
