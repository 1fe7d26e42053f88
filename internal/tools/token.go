package tools

import (
	"context"

	"github.com/atoms-tech/polarion-mcp/internal/auth"
	"github.com/mark3labs/mcp-go/mcp"
)

// TokenTool handles the set_token MCP tool.
type TokenTool struct {
	tokens  *auth.Store
	auditor *Auditor
}

// NewTokenTool creates a TokenTool over the given token store.
func NewTokenTool(tokens *auth.Store, auditor *Auditor) *TokenTool {
	return &TokenTool{tokens: tokens, auditor: auditor}
}

// Definition returns the MCP tool definition for registration.
func (t *TokenTool) Definition() mcp.Tool {
	return mcp.NewTool("set_token",
		mcp.WithDescription(
			"Set the Polarion access token manually, after generating it in "+
				"the browser or receiving it from the user. The token is "+
				"persisted and used for every subsequent API call.",
		),
		mcp.WithString("token",
			mcp.Required(),
			mcp.Description("The personal access token generated on the Polarion token page."),
		),
	)
}

// Handle processes the set_token tool call. The token value itself is
// never echoed into logs or the audit trail.
func (t *TokenTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	token := req.GetString("token", "")
	done := t.auditor.begin(ctx, "set_token", map[string]string{"token": auth.Preview(token)})

	if token == "" {
		done(statusError)
		return jsonResult(invalidInput("Missing required parameter: token")), nil
	}

	t.tokens.Set(token)

	done(statusSuccess)
	return jsonResult(envelope{
		"status":        statusSuccess,
		"message":       "Token set successfully. Please test it by fetching work items or projects.",
		"token_preview": auth.Preview(token),
	}), nil
}
