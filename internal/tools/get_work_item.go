package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetWorkItemTool handles the get_work_item MCP tool.
type GetWorkItemTool struct {
	api     API
	auditor *Auditor
}

// NewGetWorkItemTool creates a GetWorkItemTool over the given API.
func NewGetWorkItemTool(api API, auditor *Auditor) *GetWorkItemTool {
	return &GetWorkItemTool{api: api, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *GetWorkItemTool) Definition() mcp.Tool {
	return mcp.NewTool("get_work_item",
		mcp.WithDescription("Get a specific work item by ID from a project."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The Polarion project ID."),
		),
		mcp.WithString("work_item_id",
			mcp.Required(),
			mcp.Description("The work item ID, e.g. 'AC-123'."),
		),
		mcp.WithString("fields",
			mcp.Description("Field selector: @basic (default) or @all."),
		),
	)
}

// Handle processes the get_work_item tool call.
func (t *GetWorkItemTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	workItemID := req.GetString("work_item_id", "")
	fields := req.GetString("fields", defaultFields)
	done := t.auditor.begin(ctx, "get_work_item", map[string]string{
		"project_id": projectID, "work_item_id": workItemID, "fields": fields,
	})

	if projectID == "" || workItemID == "" {
		done(statusError)
		return jsonResult(invalidInput("Missing required parameters: project_id and work_item_id")), nil
	}

	item, err := t.api.WorkItem(ctx, projectID, workItemID, fields)
	if err != nil {
		done(statusError)
		return jsonResult(errorEnvelope(
			fmt.Sprintf("Failed to fetch work item %s from project %s", workItemID, projectID), err)), nil
	}
	if item == nil {
		done(statusError)
		return jsonResult(envelope{
			"status":  statusError,
			"message": fmt.Sprintf("Work item %s not found in project %s.", workItemID, projectID),
		}), nil
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status":    statusSuccess,
		"message":   fmt.Sprintf("Successfully fetched work item: %s from project %s", workItemID, projectID),
		"work_item": item,
	}), nil
}
