// Package config resolves process configuration from the environment.
//
// All knobs are read once at startup and carried in a Config value that
// the composition root injects into the components that need it. Nothing
// in this package reads the environment after New returns.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Polarion instance this server talks to
	// unless POLARION_BASE_URL overrides it.
	DefaultBaseURL = "http://dev.polarion.atoms.tech/polarion"

	// TokenFileName is the single-slot token file written under TokenDir.
	TokenFileName = "polarion_token.json"

	// RequestTimeout bounds every Polarion API call.
	RequestTimeout = 8 * time.Second

	// DefaultPort is the listen port for the HTTP transport.
	DefaultPort = "8080"
)

// Transport selects how the MCP server talks to its host.
type Transport string

const (
	// TransportStdio serves over stdin/stdout (local development).
	TransportStdio Transport = "stdio"
	// TransportHTTP serves over a streamable HTTP listener (hosting).
	TransportHTTP Transport = "http"
)

// Config holds everything resolved from the environment at startup.
type Config struct {
	// BaseURL is the Polarion instance root, without a trailing slash.
	BaseURL string

	// TokenPath is the absolute-ish path to the token file.
	TokenPath string

	// TokenOverride, when non-empty, is used as the bearer token and
	// the token file is never consulted.
	TokenOverride string

	// Transport is the serving mode ("stdio" unless MCP_TRANSPORT=http).
	Transport Transport

	// Port is the HTTP transport listen port.
	Port string

	// AuditPath is the sqlite file for the invocation audit log.
	// Empty disables auditing; AUDIT_DB set to an empty value opts out.
	AuditPath string

	// Debug enables file logging at debug level.
	Debug bool
}

// New builds a Config from the current environment.
func New() Config {
	cfg := Config{
		BaseURL:       strings.TrimSuffix(envOr("POLARION_BASE_URL", DefaultBaseURL), "/"),
		TokenPath:     filepath.Join(envOr("TOKEN_DIR", "."), TokenFileName),
		TokenOverride: os.Getenv("POLARION_TOKEN"),
		Transport:     TransportStdio,
		Port:          envOr("MCP_PORT", DefaultPort),
		AuditPath:     envOrUnset("AUDIT_DB", "polarion_audit.db"),
		Debug:         os.Getenv("DEBUG") != "",
	}
	if os.Getenv("MCP_TRANSPORT") == string(TransportHTTP) {
		cfg.Transport = TransportHTTP
	}
	return cfg
}

// LoginURL is the page the user authenticates on. Polarion serves the
// login form from the instance root, not a dedicated /login path.
func (c Config) LoginURL() string {
	return c.BaseURL
}

// TokenPageURL is where the user generates a personal access token
// after logging in.
func (c Config) TokenPageURL() string {
	return c.BaseURL + "/#/user_tokens?id=admin"
}

// RestURL returns the REST v1 endpoint for a resource path.
func (c Config) RestURL(path string) string {
	return c.BaseURL + "/rest/v1/" + strings.TrimPrefix(path, "/")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrUnset falls back only when key is entirely unset. A set-but-empty
// value is respected, so AUDIT_DB= opts out of auditing.
func envOrUnset(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
