// Polarion MCP Server
//
// An MCP server that exposes a Polarion requirements-management instance
// to AI coding tools: project and work-item browsing, token-based
// authentication, and requirement coverage analysis against a GitHub
// repository.
//
// Usage:
//
//	polarion-mcp serve    # Start MCP server (stdio or HTTP transport)
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/atoms-tech/polarion-mcp/internal/config"
	"github.com/atoms-tech/polarion-mcp/internal/logging"
	polarionserver "github.com/atoms-tech/polarion-mcp/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("polarion-mcp v%s\n", polarionserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	cfg := config.New()
	logger := logging.New(cfg.Debug, "polarion-mcp-debug.log")

	s, cleanup, err := polarionserver.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// Graceful shutdown on interrupt.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		cancel()
	}()

	if cfg.Transport == config.TransportHTTP {
		httpServer := server.NewStreamableHTTPServer(s)
		logger.Info("starting HTTP transport", "port", cfg.Port)

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.Start(":" + cfg.Port)
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	}

	_ = ctx // stdio server manages its own lifecycle

	logger.Info("starting stdio transport", "base_url", cfg.BaseURL)
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Println(`Polarion MCP Server

Usage:
  polarion-mcp serve       Start the MCP server
  polarion-mcp version     Print version
  polarion-mcp help        Show this help

Environment:
  POLARION_BASE_URL   Polarion base URL (default http://dev.polarion.atoms.tech/polarion)
  POLARION_TOKEN      Personal access token (overrides the stored token)
  TOKEN_DIR           Directory holding the saved token file
  MCP_TRANSPORT       "stdio" (default) or "http"
  MCP_PORT            HTTP port (default 8080)
  AUDIT_DB            Path to the SQLite audit log (empty disables it)
  DEBUG               "true" enables debug logging`)
}
