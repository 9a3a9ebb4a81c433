package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/contentkit/internal/domain"
	"github.com/sha1n/contentkit/internal/search"
)

// Index is the read side of the site search index used by the tools
type Index interface {
	Search(ctx context.Context, q search.Query) (*search.Result, error)
	Lookup(ctx context.Context, id string) (*domain.SearchDocument, error)
}

// ServerConfig contains configuration for creating an MCP server
type ServerConfig struct {
	Name    string
	Version string

	// Index serves the content tools; nil when the site has not been indexed
	Index Index
	// MaxResults caps search_content results
	MaxResults int
}

// CreateServer creates and configures the MCP server
func CreateServer(cfg ServerConfig) *mcp.Server {
	s := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	RegisterSearchTool(s, cfg.Index, cfg.MaxResults)
	RegisterReadTool(s, cfg.Index)

	return s
}

// errorResult wraps a user-facing failure message
func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

const notIndexedMessage = "Content search is not available. Build the site with indexing enabled and restart the server."
