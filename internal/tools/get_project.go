package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// defaultFields is the field selector used when the caller omits fields.
const defaultFields = "@basic"

// GetProjectTool handles the get_project MCP tool.
type GetProjectTool struct {
	api     API
	auditor *Auditor
}

// NewGetProjectTool creates a GetProjectTool over the given API.
func NewGetProjectTool(api API, auditor *Auditor) *GetProjectTool {
	return &GetProjectTool{api: api, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *GetProjectTool) Definition() mcp.Tool {
	return mcp.NewTool("get_project",
		mcp.WithDescription("Get a specific Polarion project by ID."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The Polarion project ID."),
		),
		mcp.WithString("fields",
			mcp.Description("Field selector: @basic (default) or @all."),
		),
	)
}

// Handle processes the get_project tool call. A missing project is a
// distinct not-found envelope, not a hard failure.
func (t *GetProjectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	fields := req.GetString("fields", defaultFields)
	done := t.auditor.begin(ctx, "get_project", map[string]string{"project_id": projectID, "fields": fields})

	if projectID == "" {
		done(statusError)
		return jsonResult(invalidInput("Missing required parameter: project_id")), nil
	}

	project, err := t.api.Project(ctx, projectID, fields)
	if err != nil {
		done(statusError)
		return jsonResult(errorEnvelope(fmt.Sprintf("Failed to fetch project %s", projectID), err)), nil
	}
	if project == nil {
		done(statusError)
		return jsonResult(envelope{
			"status":  statusError,
			"message": fmt.Sprintf("Project %s not found.", projectID),
		}), nil
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status":  statusSuccess,
		"message": fmt.Sprintf("Successfully fetched project: %s", projectID),
		"project": project,
	}), nil
}
