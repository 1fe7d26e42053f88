package polarion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/atoms-tech/polarion-mcp/internal/auth"
	"github.com/atoms-tech/polarion-mcp/internal/config"
	"github.com/atoms-tech/polarion-mcp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient wires a client against a fake Polarion backend. The
// token store starts with "test-token" unless withToken is false.
func newTestClient(t *testing.T, handler http.Handler, withToken bool) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger, _ := logging.NewTestLogger()
	tokens := auth.NewStore(filepath.Join(t.TempDir(), "token.json"), "", logger)
	if withToken {
		tokens.Set("test-token")
	}

	cfg := config.Config{BaseURL: srv.URL}
	return NewClient(cfg, tokens, logger), srv
}

func jsonHandler(t *testing.T, status int, body string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	})
}

func TestClient_NoTokenFailsBeforeNetwork(t *testing.T) {
	called := false
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}), false)

	_, err := client.Projects(context.Background(), 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.False(t, called, "client must not hit the network without a token")
}

func TestClient_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{"unauthorized", http.StatusUnauthorized, ErrUnauthenticated},
		{"forbidden", http.StatusForbidden, ErrForbidden},
		{"server error", http.StatusInternalServerError, ErrBackendUnavailable},
		{"bad gateway", http.StatusBadGateway, ErrBackendUnavailable},
		{"unavailable", http.StatusServiceUnavailable, ErrBackendUnavailable},
		{"teapot", http.StatusTeapot, ErrProtocol},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newTestClient(t, jsonHandler(t, tc.status, `{}`), true)

			_, err := client.Projects(context.Background(), 10)

			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestClient_ProtocolErrorBodyCutOnRuneBoundary(t *testing.T) {
	// 199 ASCII bytes then a multi-byte rune straddling the 200-rune
	// cap; the truncated message must stay valid UTF-8.
	body := strings.Repeat("x", 199) + "é" + strings.Repeat("y", 50)
	client, _ := newTestClient(t, jsonHandler(t, http.StatusTeapot, body), true)

	_, err := client.Projects(context.Background(), 10)

	require.ErrorIs(t, err, ErrProtocol)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, utf8.ValidString(apiErr.Msg))
	assert.Equal(t, strings.Repeat("x", 199)+"é", apiErr.Msg)
}

func TestClient_ConnectionRefusedIsBackendUnavailable(t *testing.T) {
	client, srv := newTestClient(t, jsonHandler(t, http.StatusOK, `{}`), true)
	srv.Close()

	_, err := client.Projects(context.Background(), 10)

	assert.ErrorIs(t, err, ErrBackendUnavailable)
}

func TestClient_NotFoundOnListIsAnError(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(t, http.StatusNotFound, `{}`), true)

	_, err := client.WorkItems(context.Background(), "ghost", 10, "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_NotFoundOnSingleResourceIsAbsence(t *testing.T) {
	client, _ := newTestClient(t, jsonHandler(t, http.StatusNotFound, `{}`), true)
	ctx := context.Background()

	project, err := client.Project(ctx, "ghost", "@basic")
	require.NoError(t, err)
	assert.Nil(t, project)

	item, err := client.WorkItem(ctx, "proj", "ghost", "@basic")
	require.NoError(t, err)
	assert.Nil(t, item)

	doc, err := client.Document(ctx, "proj", "space", "ghost", "@basic")
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestClient_Projects(t *testing.T) {
	body := `{"data": [
		{"type": "projects", "id": "alpha", "attributes": {"id": "alpha", "name": "Alpha"}},
		{"type": "projects", "id": "beta", "attributes": {"id": "beta", "name": "Beta"}}
	]}`
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/rest/v1/projects", r.URL.Path)
		_, _ = w.Write([]byte(body))
	}), true)

	projects, err := client.Projects(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, projects, 2)
	assert.Contains(t, gotQuery, "page%5Bsize%5D=10")
	assert.Contains(t, gotQuery, "fields%5Bprojects%5D=%40basic")
}

func TestClient_WorkItemsDecodesProjection(t *testing.T) {
	body := `{"data": [
		{"type": "workitems", "id": "proj/AC-1", "attributes": {
			"id": "AC-1", "title": "HMI brightness control", "type": "requirement",
			"description": {"type": "text/html", "value": "The HMI shall dim."}}},
		{"type": "workitems", "id": "proj/AC-2", "attributes": {
			"id": "AC-2", "title": "Wire harness", "type": "task",
			"description": "plain string description"}}
	]}`
	client, _ := newTestClient(t, jsonHandler(t, http.StatusOK, body), true)

	items, err := client.WorkItems(context.Background(), "proj", 50, "HMI")

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, WorkItem{
		ID:          "AC-1",
		Title:       "HMI brightness control",
		Type:        "requirement",
		Description: "The HMI shall dim.",
	}, items[0])
	assert.Equal(t, "plain string description", items[1].Description)
}

func TestClient_WorkItemsFallsBackToResourceID(t *testing.T) {
	body := `{"data": [{"type": "workitems", "id": "proj/AC-9", "attributes": {"title": "t"}}]}`
	client, _ := newTestClient(t, jsonHandler(t, http.StatusOK, body), true)

	items, err := client.WorkItems(context.Background(), "proj", 50, "")

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "AC-9", items[0].ID)
}

func TestClient_WorkItemsTruncatesToLimit(t *testing.T) {
	body := `{"data": [
		{"id": "p/A-1", "attributes": {"id": "A-1"}},
		{"id": "p/A-2", "attributes": {"id": "A-2"}},
		{"id": "p/A-3", "attributes": {"id": "A-3"}}
	]}`
	client, _ := newTestClient(t, jsonHandler(t, http.StatusOK, body), true)

	items, err := client.WorkItems(context.Background(), "proj", 2, "")

	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestRemediation(t *testing.T) {
	hints := Remediation(&APIError{Kind: ErrUnauthenticated, Op: "fetch projects"})
	require.NotEmpty(t, hints)
	assert.Contains(t, hints[0], "open_login")
	assert.Contains(t, hints[2], "set_token")

	hints = Remediation(&APIError{Kind: ErrBackendUnavailable, Op: "fetch projects"})
	assert.Contains(t, hints[1], "check_status")

	// Unknown errors still get generic guidance.
	assert.NotEmpty(t, Remediation(errors.New("weird")))
}
