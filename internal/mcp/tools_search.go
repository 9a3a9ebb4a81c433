package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/contentkit/internal/search"
)

// SearchArgument defines search parameters.
type SearchArgument struct {
	Query   string `json:"query" jsonschema_description:"Search query matched against content, descriptions, names and code symbols"`
	Type    string `json:"type,omitempty" jsonschema_description:"Filter by content type (e.g., markdown, code, json, image)"`
	Subtype string `json:"subtype,omitempty" jsonschema_description:"Filter by content subtype (e.g., python, react, png)"`
}

// SearchHandler handles the search_content tool.
type SearchHandler struct {
	index      Index
	maxResults int
}

// NewSearchHandler creates a new search handler.
func NewSearchHandler(index Index, maxResults int) *SearchHandler {
	if maxResults <= 0 {
		maxResults = search.DefaultLimit
	}
	return &SearchHandler{index: index, maxResults: maxResults}
}

// Handle executes the search and returns formatted results.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgument) (*mcp.CallToolResult, any, error) {
	if h.index == nil {
		return errorResult(notIndexedMessage), nil, nil
	}
	if strings.TrimSpace(args.Query) == "" {
		return errorResult("Query cannot be empty"), nil, nil
	}

	res, err := h.index.Search(ctx, search.Query{
		Text:    args.Query,
		Type:    args.Type,
		Subtype: args.Subtype,
		Limit:   h.maxResults,
	})
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}

	return formatResults(res, args.Query), nil, nil
}

// formatResults renders hits as markdown for the client.
func formatResults(res *search.Result, queryStr string) *mcp.CallToolResult {
	if res.Total == 0 {
		return textResult(fmt.Sprintf("No results found for query: %s", queryStr))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d results for '%s':\n\n", res.Total, queryStr)

	for i, hit := range res.Hits {
		fmt.Fprintf(&sb, "### %d. %s (%s/%s)\n", i+1, hit.Name, hit.Type, hit.Subtype)
		fmt.Fprintf(&sb, "**ID**: %s\n", hit.ID)
		if hit.Description != "" {
			fmt.Fprintf(&sb, "**Description**: %s\n", hit.Description)
		}
		fmt.Fprintf(&sb, "**Page**: %s\n", hit.Page)
		fmt.Fprintf(&sb, "**Score**: %.4f\n\n", hit.Score)

		if len(hit.Fragments) > 0 {
			sb.WriteString("```\n")
			for _, fragment := range hit.Fragments {
				sb.WriteString(fragment)
				sb.WriteString("\n")
			}
			sb.WriteString("```\n")
		}
		sb.WriteString("\n")
	}

	if res.Total > uint64(len(res.Hits)) {
		fmt.Fprintf(&sb, "... and %d more results\n", res.Total-uint64(len(res.Hits)))
	}

	return textResult(sb.String())
}

// GetToolDefinition returns the MCP tool definition.
func (h *SearchHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "search_content",
		Description: "Search the generated content site using full-text search, optionally filtered by content type and subtype",
	}
}

// RegisterSearchTool registers the search tool with an MCP server.
func RegisterSearchTool(server *mcp.Server, index Index, maxResults int) {
	handler := NewSearchHandler(index, maxResults)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
