package gitrepo

import (
	"testing"

	"github.com/atoms-tech/polarion-mcp/internal/polarion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{"plain", "https://github.com/acme/widgets", "acme", "widgets", false},
		{"dot git suffix", "https://github.com/acme/widgets.git", "acme", "widgets", false},
		{"www host", "https://www.github.com/acme/widgets", "acme", "widgets", false},
		{"deep path keeps first two segments", "https://github.com/acme/widgets/tree/main/src", "acme", "widgets", false},
		{"wrong host", "https://gitlab.com/o/r", "", "", true},
		{"missing repo segment", "https://github.com/onlyowner", "", "", true},
		{"empty", "", "", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			owner, repo, err := Parse(tc.url)

			if tc.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, polarion.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantOwner, owner)
			assert.Equal(t, tc.wantRepo, repo)
		})
	}
}

func TestPrepare(t *testing.T) {
	plan, err := Prepare("https://github.com/acme/widgets.git", "src/hmi")

	require.NoError(t, err)
	assert.Equal(t, "acme", plan.Owner)
	assert.Equal(t, "widgets", plan.Repo)
	assert.Equal(t, "src/hmi", plan.Folder)

	require.NotEmpty(t, plan.Steps)
	assert.Equal(t, "list_files", plan.Steps[0].Action)
	assert.Contains(t, plan.Steps[0].Target, "acme/widgets:src/hmi")
	// The listing must come before any reads.
	assert.Equal(t, "read_file", plan.Steps[1].Action)
}

func TestPrepare_EmptyFolderScopesToRoot(t *testing.T) {
	plan, err := Prepare("https://github.com/acme/widgets", "")

	require.NoError(t, err)
	assert.Equal(t, "", plan.Folder)
	assert.Contains(t, plan.Steps[0].Target, "acme/widgets:.")
}

func TestPrepare_InvalidURL(t *testing.T) {
	_, err := Prepare("https://gitlab.com/o/r", "")

	assert.ErrorIs(t, err, polarion.ErrInvalidInput)
}
