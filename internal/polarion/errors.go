package polarion

import (
	"errors"
	"fmt"
)

// Failure taxonomy for Polarion API calls. Every error returned by the
// client wraps exactly one of these sentinels, so callers dispatch with
// errors.Is instead of inspecting status codes.
var (
	// ErrUnauthenticated covers a missing token and HTTP 401.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden covers HTTP 403.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound covers HTTP 404. Single-resource methods swallow it
	// and return absence; list methods surface it to the caller.
	ErrNotFound = errors.New("not found")
	// ErrBackendUnavailable covers 5xx, refused connections and timeouts.
	ErrBackendUnavailable = errors.New("backend unavailable")
	// ErrProtocol covers any other non-2xx response.
	ErrProtocol = errors.New("protocol error")
	// ErrInvalidInput covers malformed caller input (bad repository URL,
	// missing required parameter). Never produced by the client itself.
	ErrInvalidInput = errors.New("invalid input")
)

// APIError carries the taxonomy kind plus the context a tool envelope
// needs: the failed operation, the HTTP status (0 for transport
// failures), and remediation hints for the calling agent.
type APIError struct {
	Kind   error
	Op     string
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (HTTP %d): %s", e.Kind, e.Op, e.Status, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Msg)
}

func (e *APIError) Unwrap() error { return e.Kind }

// Remediation returns the next tool calls the caller should make to
// recover from err. The guidance is part of the observable contract —
// the host agent acts on it.
func Remediation(err error) []string {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return []string{
			"Run open_login to open the Polarion login page",
			"Generate a new token on the token page",
			"Run set_token with the generated token",
			"Retry the original call",
		}
	case errors.Is(err, ErrForbidden):
		return []string{
			"Verify the project ID is one your account can access",
			"Run list_projects to see accessible projects",
		}
	case errors.Is(err, ErrNotFound):
		return []string{
			"Check the resource ID for typos",
			"Run list_projects or list_work_items to discover valid IDs",
		}
	case errors.Is(err, ErrBackendUnavailable):
		return []string{
			"Check that the Polarion instance is reachable",
			"Run check_status to inspect the connection state",
			"Retry after a short wait",
		}
	case errors.Is(err, ErrInvalidInput):
		return []string{
			"Fix the reported input and call the tool again",
		}
	default:
		return []string{
			"Run check_status to inspect the connection state",
			"Retry the original call",
		}
	}
}
