package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// GetDocumentTool handles the get_document MCP tool.
type GetDocumentTool struct {
	api     API
	auditor *Auditor
}

// NewGetDocumentTool creates a GetDocumentTool over the given API.
func NewGetDocumentTool(api API, auditor *Auditor) *GetDocumentTool {
	return &GetDocumentTool{api: api, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *GetDocumentTool) Definition() mcp.Tool {
	return mcp.NewTool("get_document",
		mcp.WithDescription("Get a live document by name from a project space."),
		mcp.WithString("project_id",
			mcp.Required(),
			mcp.Description("The Polarion project ID."),
		),
		mcp.WithString("space_id",
			mcp.Required(),
			mcp.Description("The space the document lives in, e.g. '_default'."),
		),
		mcp.WithString("document_name",
			mcp.Required(),
			mcp.Description("The document name."),
		),
		mcp.WithString("fields",
			mcp.Description("Field selector: @basic (default) or @all."),
		),
	)
}

// Handle processes the get_document tool call.
func (t *GetDocumentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	projectID := req.GetString("project_id", "")
	spaceID := req.GetString("space_id", "")
	documentName := req.GetString("document_name", "")
	fields := req.GetString("fields", defaultFields)
	done := t.auditor.begin(ctx, "get_document", map[string]string{
		"project_id": projectID, "space_id": spaceID, "document_name": documentName, "fields": fields,
	})

	if projectID == "" || spaceID == "" || documentName == "" {
		done(statusError)
		return jsonResult(invalidInput("Missing required parameters: project_id, space_id and document_name")), nil
	}

	doc, err := t.api.Document(ctx, projectID, spaceID, documentName, fields)
	if err != nil {
		done(statusError)
		return jsonResult(errorEnvelope(fmt.Sprintf(
			"Failed to fetch document %s from space %s in project %s", documentName, spaceID, projectID), err)), nil
	}
	if doc == nil {
		done(statusError)
		return jsonResult(envelope{
			"status": statusError,
			"message": fmt.Sprintf("Document %s not found in space %s of project %s.",
				documentName, spaceID, projectID),
		}), nil
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status": statusSuccess,
		"message": fmt.Sprintf("Successfully fetched document: %s from space %s in project %s",
			documentName, spaceID, projectID),
		"document": doc,
	}), nil
}
