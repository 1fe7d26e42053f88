package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ListWorkItemsTool handles the list_work_items MCP tool.
type ListWorkItemsTool struct {
	api     API
	auditor *Auditor
}

// NewListWorkItemsTool creates a ListWorkItemsTool over the given API.
func NewListWorkItemsTool(api API, auditor *Auditor) *ListWorkItemsTool {
	return &ListWorkItemsTool{api: api, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *ListWorkItemsTool) Definition() mcp.Tool {
	return mcp.NewTool("list_work_items",
		mcp.WithDescription(
			"List work items from a project with minimal fields "+
				"(id, title, type, description). Supports an optional Lucene query.",
		),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The Polarion project ID."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of work items to return (default: 10)."),
		),
		mcp.WithString("query",
			mcp.Description("Optional work item query, e.g. 'type:requirement'."),
		),
	)
}

// Handle processes the list_work_items tool call.
func (t *ListWorkItemsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	limit := int(req.GetFloat("limit", defaultListLimit))
	if limit <= 0 {
		limit = defaultListLimit
	}
	query := req.GetString("query", "")
	done := t.auditor.begin(ctx, "list_work_items", map[string]any{
		"project_id": projectID, "limit": limit, "query": query,
	})

	if projectID == "" {
		done(statusError)
		return jsonResult(invalidInput("Missing required parameter: project_id")), nil
	}

	items, err := t.api.WorkItems(ctx, projectID, limit, query)
	if err != nil {
		done(statusError)
		return jsonResult(errorEnvelope(
			fmt.Sprintf("Failed to fetch work items from project %s", projectID), err)), nil
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status":     statusSuccess,
		"message":    fmt.Sprintf("Successfully fetched %d work items from project %s", len(items), projectID),
		"work_items": items,
		"count":      len(items),
		"project_id": projectID,
	}), nil
}
