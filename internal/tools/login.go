package tools

import (
	"context"

	"github.com/atoms-tech/polarion-mcp/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/pkg/browser"
)

// LoginTool handles the open_login MCP tool. Polarion has no API login
// flow for personal tokens, so authentication is manual: open the login
// page, have the user generate a token in the UI, then set_token.
type LoginTool struct {
	cfg     config.Config
	auditor *Auditor

	// openURL is injectable for tests; defaults to the system browser.
	openURL func(url string) error
}

// NewLoginTool creates a LoginTool using the system default browser.
func NewLoginTool(cfg config.Config, auditor *Auditor) *LoginTool {
	return &LoginTool{cfg: cfg, auditor: auditor, openURL: browser.OpenURL}
}

// Definition returns the MCP tool definition for registration.
func (t *LoginTool) Definition() mcp.Tool {
	return mcp.NewTool("open_login",
		mcp.WithDescription(
			"Open the Polarion login page in the user's browser for manual "+
				"authentication. After logging in, generate a personal access "+
				"token on the token page and pass it to set_token.",
		),
	)
}

// Handle processes the open_login tool call.
func (t *LoginTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	done := t.auditor.begin(ctx, "open_login", nil)

	if err := t.openURL(t.cfg.LoginURL()); err != nil {
		env := envelope{
			"status":     statusError,
			"message":    "Failed to open login page: " + err.Error(),
			"manual_url": t.cfg.LoginURL(),
		}
		done(statusError)
		return jsonResult(env), nil
	}

	env := envelope{
		"status":         statusSuccess,
		"message":        "Polarion login page opened in your browser: " + t.cfg.LoginURL(),
		"login_url":      t.cfg.LoginURL(),
		"token_page_url": t.cfg.TokenPageURL(),
		"instructions": []string{
			"1. Complete the login form in your browser",
			"2. After successful login, navigate to: " + t.cfg.TokenPageURL(),
			"3. Generate a new token manually",
			"4. Copy the token and use it with the set_token command",
		},
		"note": "If you get an 'Internal server error', try refreshing the page or check if the Polarion instance is accessible",
	}
	done(statusSuccess)
	return jsonResult(env), nil
}
