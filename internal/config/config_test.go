package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_Defaults(t *testing.T) {
	for _, key := range []string{"POLARION_BASE_URL", "POLARION_TOKEN", "TOKEN_DIR", "MCP_TRANSPORT", "MCP_PORT", "AUDIT_DB", "DEBUG"} {
		// t.Setenv registers the restore; unset to exercise the defaults.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := New()

	assert.Equal(t, DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, filepath.Join(".", TokenFileName), cfg.TokenPath)
	assert.Empty(t, cfg.TokenOverride)
	assert.Equal(t, TransportStdio, cfg.Transport)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "polarion_audit.db", cfg.AuditPath)
	assert.False(t, cfg.Debug)
}

func TestNew_EmptyAuditDBDisablesAuditing(t *testing.T) {
	t.Setenv("AUDIT_DB", "")

	assert.Empty(t, New().AuditPath)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("POLARION_BASE_URL", "https://polarion.example.com/polarion/")
	t.Setenv("POLARION_TOKEN", "env-token")
	t.Setenv("TOKEN_DIR", "/var/lib/polarion-mcp")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_PORT", "9090")

	cfg := New()

	assert.Equal(t, "https://polarion.example.com/polarion", cfg.BaseURL, "trailing slash trimmed")
	assert.Equal(t, "env-token", cfg.TokenOverride)
	assert.Equal(t, "/var/lib/polarion-mcp/polarion_token.json", cfg.TokenPath)
	assert.Equal(t, TransportHTTP, cfg.Transport)
	assert.Equal(t, "9090", cfg.Port)
}

func TestNew_UnknownTransportFallsBackToStdio(t *testing.T) {
	t.Setenv("MCP_TRANSPORT", "websocket")

	assert.Equal(t, TransportStdio, New().Transport)
}

func TestConfig_URLs(t *testing.T) {
	cfg := Config{BaseURL: "https://polarion.example.com/polarion"}

	assert.Equal(t, "https://polarion.example.com/polarion", cfg.LoginURL())
	assert.Equal(t, "https://polarion.example.com/polarion/#/user_tokens?id=admin", cfg.TokenPageURL())
	assert.Equal(t, "https://polarion.example.com/polarion/rest/v1/projects", cfg.RestURL("projects"))
	assert.Equal(t, "https://polarion.example.com/polarion/rest/v1/projects", cfg.RestURL("/projects"))
}
