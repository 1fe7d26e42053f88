// Package gitrepo turns a GitHub repository URL into an inspection plan.
//
// This component never touches the repository itself. Code inspection is
// delegated to an external capability; gitrepo only validates the URL,
// extracts owner and repository name, and describes the calls the
// inspecting collaborator must perform.
package gitrepo

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/atoms-tech/polarion-mcp/internal/polarion"
)

// Step is one external capability invocation the inspector must perform.
type Step struct {
	Action  string `json:"action"`
	Target  string `json:"target"`
	Purpose string `json:"purpose"`
}

// Plan describes the inspection work needed to populate an
// implementation reference map for owner/repo.
type Plan struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Folder string `json:"folder"`
	Steps  []Step `json:"steps"`
}

// Parse validates a GitHub URL and extracts owner and repository name.
// A trailing ".git" on the repository segment is stripped.
func Parse(repoURL string) (owner, repo string, err error) {
	u, parseErr := url.Parse(strings.TrimSpace(repoURL))
	if parseErr != nil {
		return "", "", fmt.Errorf("%w: unparseable repository URL %q", polarion.ErrInvalidInput, repoURL)
	}
	if u.Host != "github.com" && u.Host != "www.github.com" {
		return "", "", fmt.Errorf("%w: repository URL must be on github.com, got %q", polarion.ErrInvalidInput, u.Host)
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 2 || segments[0] == "" || segments[1] == "" {
		return "", "", fmt.Errorf("%w: repository URL needs owner and repository segments", polarion.ErrInvalidInput)
	}

	return segments[0], strings.TrimSuffix(segments[1], ".git"), nil
}

// Prepare builds the inspection plan for repoURL scoped to folder.
// An empty folder means the repository root.
func Prepare(repoURL, folder string) (*Plan, error) {
	owner, repo, err := Parse(repoURL)
	if err != nil {
		return nil, err
	}

	scope := folder
	if scope == "" {
		scope = "."
	}

	full := owner + "/" + repo
	return &Plan{
		Owner:  owner,
		Repo:   repo,
		Folder: folder,
		Steps: []Step{
			{
				Action:  "list_files",
				Target:  full + ":" + scope,
				Purpose: "enumerate source files under the scoped folder",
			},
			{
				Action:  "read_file",
				Target:  full + ":" + scope + "/<each listed source file>",
				Purpose: "scan file contents for requirement identifiers and matching functionality",
			},
			{
				Action:  "report_references",
				Target:  full,
				Purpose: "return a requirement-id to evidence mapping for coverage computation",
			},
		},
	}, nil
}
