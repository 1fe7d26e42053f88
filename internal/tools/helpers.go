// Package tools implements the MCP tool handlers for the Polarion server.
//
// Each tool is a struct that receives its dependencies via constructor
// and exposes Definition/Handle, registered by internal/server. Handlers
// return indented JSON envelopes with a status field; expected failures
// become error envelopes with remediation hints, never Go errors — a
// tool call must not be able to take the process down.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/atoms-tech/polarion-mcp/internal/audit"
	"github.com/atoms-tech/polarion-mcp/internal/logging"
	"github.com/atoms-tech/polarion-mcp/internal/polarion"
	"github.com/mark3labs/mcp-go/mcp"
)

// API is the slice of the Polarion client the tools consume.
// Abstracted for testability.
type API interface {
	Projects(ctx context.Context, limit int) ([]polarion.Resource, error)
	Project(ctx context.Context, projectID, fields string) (polarion.Resource, error)
	WorkItems(ctx context.Context, projectID string, limit int, query string) ([]polarion.WorkItem, error)
	WorkItem(ctx context.Context, projectID, workItemID, fields string) (polarion.Resource, error)
	Document(ctx context.Context, projectID, spaceID, documentName, fields string) (polarion.Resource, error)
}

// envelope is the common output shape: a status plus arbitrary payload.
type envelope map[string]any

// Envelope status values.
const (
	statusSuccess        = "success"
	statusPartialSuccess = "partial_success"
	statusWarning        = "warning"
	statusError          = "error"
)

// jsonResult renders an envelope as an indented JSON tool result.
// Error envelopes are flagged as tool errors so the host can tell.
func jsonResult(env envelope) *mcp.CallToolResult {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf(`{"status": "error", "message": "encoding response: %v"}`, err))
	}
	if env["status"] == statusError {
		return mcp.NewToolResultError(string(data))
	}
	return mcp.NewToolResultText(string(data))
}

// errorEnvelope builds an error envelope for err with remediation hints.
func errorEnvelope(message string, err error) envelope {
	return envelope{
		"status":      statusError,
		"message":     fmt.Sprintf("%s: %v", message, err),
		"remediation": polarion.Remediation(err),
	}
}

// invalidInput builds an error envelope for a caller mistake.
func invalidInput(message string) envelope {
	return envelope{
		"status":      statusError,
		"message":     message,
		"remediation": polarion.Remediation(polarion.ErrInvalidInput),
	}
}

// Auditor records tool invocations to the audit log and mirrors them to
// the structured logger. Nil-safe: with no audit log it only logs.
type Auditor struct {
	log    *audit.Log
	logger *logging.AppLogger
}

func NewAuditor(log *audit.Log, logger *logging.AppLogger) *Auditor {
	return &Auditor{log: log, logger: logger}
}

// begin logs the invocation with an input echo and returns a done func
// that records the outcome.
func (a *Auditor) begin(ctx context.Context, tool string, args any) func(status string) {
	echo := inputEcho(args)
	a.logger.Info("tool invoked", "tool", tool, "input", echo)
	start := time.Now()

	return func(status string) {
		if a.log == nil {
			return
		}
		err := a.log.Record(ctx, audit.Entry{
			Tool:     tool,
			Input:    echo,
			Status:   status,
			Duration: time.Since(start),
		})
		if err != nil {
			a.logger.Warn("audit record failed", "tool", tool, "error", err)
		}
	}
}

// inputEcho serializes tool arguments for traceability.
func inputEcho(args any) string {
	data, err := json.Marshal(args)
	if err != nil {
		return fmt.Sprintf("%+v", args)
	}
	return string(data)
}

// envStatus extracts the status field for audit recording.
func envStatus(env envelope) string {
	if s, ok := env["status"].(string); ok {
		return s
	}
	return statusError
}
