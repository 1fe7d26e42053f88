package tools

import (
	"context"

	"github.com/atoms-tech/polarion-mcp/internal/auth"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatusTool handles the check_status MCP tool.
type StatusTool struct {
	tokens  *auth.Store
	auditor *Auditor
}

// NewStatusTool creates a StatusTool over the given token store.
func NewStatusTool(tokens *auth.Store, auditor *Auditor) *StatusTool {
	return &StatusTool{tokens: tokens, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("check_status",
		mcp.WithDescription(
			"Check the current Polarion connection and authentication state: "+
				"whether a token is available and whether one is persisted.",
		),
	)
}

// Handle processes the check_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	done := t.auditor.begin(ctx, "check_status", nil)

	hasToken := t.tokens.Token() != ""
	tokenSaved := t.tokens.Saved()

	nextSteps := []string{
		"Run list_projects to verify the token works",
	}
	if !hasToken {
		nextSteps = []string{
			"Run open_login to open the Polarion login page",
			"Generate a token in the browser",
			"Run set_token with the generated token",
		}
	}

	done(statusSuccess)
	return jsonResult(envelope{
		"status":      statusSuccess,
		"has_token":   hasToken,
		"token_saved": tokenSaved,
		"next_steps":  nextSteps,
	}), nil
}
