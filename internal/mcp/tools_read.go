package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sha1n/contentkit/internal/domain"
	"github.com/sha1n/contentkit/internal/search"
)

// ReadArgument defines read parameters.
type ReadArgument struct {
	ID string `json:"id" jsonschema_description:"Record ID as returned by search_content"`
}

// ReadHandler handles the read_content tool.
type ReadHandler struct {
	index Index
}

// NewReadHandler creates a new read handler.
func NewReadHandler(index Index) *ReadHandler {
	return &ReadHandler{index: index}
}

// Handle looks up a record and returns its kind, description and text.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgument) (*mcp.CallToolResult, any, error) {
	if h.index == nil {
		return errorResult(notIndexedMessage), nil, nil
	}
	id := strings.TrimSpace(args.ID)
	if id == "" {
		return errorResult("ID cannot be empty"), nil, nil
	}

	doc, err := h.index.Lookup(ctx, id)
	if err != nil {
		if errors.Is(err, search.ErrRecordNotFound) {
			return errorResult(fmt.Sprintf("Record not found: %s", id)), nil, nil
		}
		return errorResult(fmt.Sprintf("Error reading record: %s", err)), nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**Name**: %s\n", doc.Name)
	fmt.Fprintf(&sb, "**Kind**: %s/%s\n", doc.Type, doc.Subtype)
	fmt.Fprintf(&sb, "**Description**: %s\n", doc.Description)
	fmt.Fprintf(&sb, "**Source**: `%s`\n", doc.SourcePath)
	fmt.Fprintf(&sb, "**Page**: %s\n\n", doc.Page)

	switch domain.Type(doc.Type) {
	case domain.TypeImage:
		sb.WriteString("Image content is not available as text; open the page to view it.")
	case domain.TypeBinary:
		sb.WriteString("Binary content is not available as text; open the page for a hex dump.")
	default:
		fmt.Fprintf(&sb, "```%s\n%s\n```", codeFence(doc), doc.Content)
	}

	return textResult(sb.String()), nil, nil
}

// codeFence returns the language hint for a record's fenced block.
func codeFence(doc *domain.SearchDocument) string {
	switch domain.Type(doc.Type) {
	case domain.TypeCode:
		if doc.Subtype == string(domain.SubtypeReact) {
			return "jsx"
		}
		return doc.Subtype
	case domain.TypeMarkdown, domain.TypeHTML, domain.TypeJSON, domain.TypeXML:
		return doc.Type
	}
	return ""
}

// GetToolDefinition returns the MCP tool definition.
func (h *ReadHandler) GetToolDefinition() *mcp.Tool {
	return &mcp.Tool{
		Name:        "read_content",
		Description: "Read an indexed content record by ID, returning its kind, description and text",
	}
}

// RegisterReadTool registers the read tool with an MCP server.
func RegisterReadTool(server *mcp.Server, index Index) {
	handler := NewReadHandler(index)
	mcp.AddTool(server, handler.GetToolDefinition(), handler.Handle)
}
