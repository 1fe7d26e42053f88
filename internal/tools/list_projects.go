package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultListLimit is the page size used when the caller omits limit.
const defaultListLimit = 10

// ListProjectsTool handles the list_projects MCP tool.
type ListProjectsTool struct {
	api     API
	auditor *Auditor
}

// NewListProjectsTool creates a ListProjectsTool over the given API.
func NewListProjectsTool(api API, auditor *Auditor) *ListProjectsTool {
	return &ListProjectsTool{api: api, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *ListProjectsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List Polarion projects (fast, minimal fields)."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of projects to return (default: 10)."),
		),
	)
}

// Handle processes the list_projects tool call.
func (t *ListProjectsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := int(req.GetFloat("limit", defaultListLimit))
	if limit <= 0 {
		limit = defaultListLimit
	}
	done := t.auditor.begin(ctx, "list_projects", map[string]int{"limit": limit})

	projects, err := t.api.Projects(ctx, limit)
	if err != nil {
		done(statusError)
		return jsonResult(errorEnvelope("Failed to fetch projects", err)), nil
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status":   statusSuccess,
		"message":  fmt.Sprintf("Successfully fetched %d projects", len(projects)),
		"projects": projects,
		"count":    len(projects),
	}), nil
}
