// Package polarion is the authenticated REST client for the Polarion
// backend. It issues read-only GETs against the /rest/v1 API, resolves
// the bearer token lazily per call, and maps every transport or HTTP
// failure onto the package's error taxonomy.
package polarion

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/atoms-tech/polarion-mcp/internal/auth"
	"github.com/atoms-tech/polarion-mcp/internal/config"
	"github.com/atoms-tech/polarion-mcp/internal/logging"
)

// Client talks to one Polarion instance. It never mutates the token
// store; an expired token simply surfaces as ErrUnauthenticated on the
// next call.
type Client struct {
	cfg    config.Config
	tokens *auth.Store
	http   *http.Client
	logger *logging.AppLogger
}

// NewClient builds a client with the fixed request timeout from config.
func NewClient(cfg config.Config, tokens *auth.Store, logger *logging.AppLogger) *Client {
	return &Client{
		cfg:    cfg,
		tokens: tokens,
		http:   &http.Client{Timeout: config.RequestTimeout},
		logger: logger,
	}
}

// get performs an authenticated GET and returns the response body.
// Fails fast with ErrUnauthenticated before any network I/O when no
// token is available.
func (c *Client) get(ctx context.Context, op, path string, params url.Values) ([]byte, error) {
	token := c.tokens.Token()
	if token == "" {
		return nil, &APIError{
			Kind: ErrUnauthenticated,
			Op:   op,
			Msg:  "no token available, set or generate a token first",
		}
	}

	reqURL := c.cfg.RestURL(path)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", op, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		// Refused connections, DNS failures and the 8s timeout all land
		// here; the backend is unreachable either way.
		return nil, &APIError{Kind: ErrBackendUnavailable, Op: op, Msg: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Kind: ErrBackendUnavailable, Op: op, Msg: err.Error()}
	}

	if apiErr := c.mapStatus(op, resp.StatusCode, body); apiErr != nil {
		return nil, apiErr
	}
	return body, nil
}

// mapStatus converts a non-2xx response into the failure taxonomy.
func (c *Client) mapStatus(op string, status int, body []byte) *APIError {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return &APIError{Kind: ErrUnauthenticated, Op: op, Status: status,
			Msg: "token may be expired or invalid, regenerate it"}
	case status == http.StatusForbidden:
		return &APIError{Kind: ErrForbidden, Op: op, Status: status,
			Msg: "account lacks permission for this resource"}
	case status == http.StatusNotFound:
		return &APIError{Kind: ErrNotFound, Op: op, Status: status,
			Msg: "resource does not exist"}
	case status == http.StatusInternalServerError,
		status == http.StatusBadGateway,
		status == http.StatusServiceUnavailable:
		return &APIError{Kind: ErrBackendUnavailable, Op: op, Status: status,
			Msg: "Polarion server error, try again later"}
	default:
		// Cut on a rune boundary so a multi-byte character in the body
		// is never split into invalid UTF-8.
		msg := []rune(string(body))
		if len(msg) > 200 {
			msg = msg[:200]
		}
		return &APIError{Kind: ErrProtocol, Op: op, Status: status, Msg: string(msg)}
	}
}

// Projects lists up to limit projects with basic fields.
func (c *Client) Projects(ctx context.Context, limit int) ([]Resource, error) {
	params := url.Values{}
	params.Set("fields[projects]", "@basic")
	params.Set("page[size]", strconv.Itoa(limit))

	body, err := c.get(ctx, "fetch projects", "projects", params)
	if err != nil {
		return nil, err
	}

	projects, err := decodeResources(body)
	if err != nil {
		return nil, &APIError{Kind: ErrProtocol, Op: "fetch projects", Msg: err.Error()}
	}
	if len(projects) > limit {
		projects = projects[:limit]
	}
	c.logger.Info("fetched projects", "count", len(projects))
	return projects, nil
}

// Project fetches one project. Returns (nil, nil) when it does not
// exist — absence is a valid outcome, not an error.
func (c *Client) Project(ctx context.Context, projectID, fields string) (Resource, error) {
	params := url.Values{}
	params.Set("fields[projects]", fields)

	op := "fetch project " + projectID
	body, err := c.get(ctx, op, "projects/"+url.PathEscape(projectID), params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.logger.Warn("project not found", "project", projectID)
			return nil, nil
		}
		return nil, err
	}
	return decodeResource(op, body)
}

// WorkItems lists work items with the minimal field projection. An
// empty query lists everything the page size allows.
func (c *Client) WorkItems(ctx context.Context, projectID string, limit int, query string) ([]WorkItem, error) {
	params := url.Values{}
	params.Set("fields[workitems]", MinWorkItemFields)
	params.Set("page[size]", strconv.Itoa(limit))
	if query != "" {
		params.Set("query", query)
	}

	op := "fetch work items from project " + projectID
	body, err := c.get(ctx, op, "projects/"+url.PathEscape(projectID)+"/workitems", params)
	if err != nil {
		return nil, err
	}

	items, err := decodeWorkItems(body)
	if err != nil {
		return nil, &APIError{Kind: ErrProtocol, Op: op, Msg: err.Error()}
	}
	if len(items) > limit {
		items = items[:limit]
	}
	c.logger.Info("fetched work items", "project", projectID, "count", len(items), "query", query)
	return items, nil
}

// WorkItem fetches one work item. Returns (nil, nil) on 404.
func (c *Client) WorkItem(ctx context.Context, projectID, workItemID, fields string) (Resource, error) {
	params := url.Values{}
	params.Set("fields[workitems]", fields)

	op := fmt.Sprintf("fetch work item %s from project %s", workItemID, projectID)
	path := "projects/" + url.PathEscape(projectID) + "/workitems/" + url.PathEscape(workItemID)
	body, err := c.get(ctx, op, path, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.logger.Warn("work item not found", "project", projectID, "work_item", workItemID)
			return nil, nil
		}
		return nil, err
	}
	return decodeResource(op, body)
}

// Document fetches one live document from a project space. Returns
// (nil, nil) on 404.
func (c *Client) Document(ctx context.Context, projectID, spaceID, documentName, fields string) (Resource, error) {
	params := url.Values{}
	params.Set("fields[documents]", fields)

	op := fmt.Sprintf("fetch document %s from space %s in project %s", documentName, spaceID, projectID)
	path := "projects/" + url.PathEscape(projectID) +
		"/spaces/" + url.PathEscape(spaceID) +
		"/documents/" + url.PathEscape(documentName)
	body, err := c.get(ctx, op, path, params)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.logger.Warn("document not found", "project", projectID, "space", spaceID, "document", documentName)
			return nil, nil
		}
		return nil, err
	}
	return decodeResource(op, body)
}

func decodeResource(op string, body []byte) (Resource, error) {
	var res Resource
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, &APIError{Kind: ErrProtocol, Op: op, Msg: err.Error()}
	}
	return res, nil
}
