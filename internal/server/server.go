// Package server wires all MCP components together: the Polarion REST
// client, the token store, the audit log, and the tool handlers.
package server

import (
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	"github.com/atoms-tech/polarion-mcp/internal/audit"
	"github.com/atoms-tech/polarion-mcp/internal/auth"
	"github.com/atoms-tech/polarion-mcp/internal/config"
	"github.com/atoms-tech/polarion-mcp/internal/coverage"
	"github.com/atoms-tech/polarion-mcp/internal/logging"
	"github.com/atoms-tech/polarion-mcp/internal/polarion"
	"github.com/atoms-tech/polarion-mcp/internal/tools"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// New builds the MCP server with every tool registered. The returned
// cleanup function closes the audit log and must be called on shutdown.
func New(cfg config.Config, logger *logging.AppLogger) (*server.MCPServer, func(), error) {
	tokens := auth.NewStore(cfg.TokenPath, cfg.TokenOverride, logger)
	client := polarion.NewClient(cfg, tokens, logger)

	cleanup := func() {}
	var auditLog *audit.Log
	if cfg.AuditPath != "" {
		log, err := audit.Open(cfg.AuditPath)
		if err != nil {
			// The audit log is a convenience, not a requirement.
			logger.Warn("audit log unavailable, continuing without it", "path", cfg.AuditPath, "error", err)
		} else {
			auditLog = log
			cleanup = func() {
				if err := auditLog.Close(); err != nil {
					logger.Warn("closing audit log", "error", err)
				}
			}
		}
	}
	auditor := tools.NewAuditor(auditLog, logger)

	s := server.NewMCPServer(
		"polarion-mcp",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(cfg)),
	)

	login := tools.NewLoginTool(cfg, auditor)
	s.AddTool(login.Definition(), login.Handle)

	token := tools.NewTokenTool(tokens, auditor)
	s.AddTool(token.Definition(), token.Handle)

	status := tools.NewStatusTool(tokens, auditor)
	s.AddTool(status.Definition(), status.Handle)

	listProjects := tools.NewListProjectsTool(client, auditor)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	getProject := tools.NewGetProjectTool(client, auditor)
	s.AddTool(getProject.Definition(), getProject.Handle)

	listWorkItems := tools.NewListWorkItemsTool(client, auditor)
	s.AddTool(listWorkItems.Definition(), listWorkItems.Handle)

	getWorkItem := tools.NewGetWorkItemTool(client, auditor)
	s.AddTool(getWorkItem.Definition(), getWorkItem.Handle)

	getDocument := tools.NewGetDocumentTool(client, auditor)
	s.AddTool(getDocument.Definition(), getDocument.Handle)

	cov := tools.NewCoverageTool(client, coverage.PlanOnly{}, logger, auditor)
	s.AddTool(cov.Definition(), cov.Handle)

	return s, cleanup, nil
}

func serverInstructions(cfg config.Config) string {
	return fmt.Sprintf(`Polarion MCP server for %s.

Authentication: Polarion requires a personal access token. Call open_login
to open the Polarion login page, generate a token on the user tokens page,
then pass it to set_token. check_status reports whether a token is
configured. Without a token every Polarion tool returns an authentication
error.

Reading requirements: list_projects enumerates accessible projects.
list_work_items accepts Lucene queries such as "type:requirement" to
filter work items within a project. get_work_item and get_document fetch
individual items with full fields.

Coverage analysis: coverage_analysis fetches the requirements matching a
topic, prepares an inspection plan for a GitHub repository, and reports
which requirements have matching references in the code. Follow the
inspection_plan steps against the repository, then re-run the analysis to
refine the results.`, cfg.BaseURL)
}
