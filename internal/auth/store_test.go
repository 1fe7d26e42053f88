package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/atoms-tech/polarion-mcp/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, override string) (*Store, string) {
	t.Helper()
	logger, _ := logging.NewTestLogger()
	path := filepath.Join(t.TempDir(), "polarion_token.json")
	return NewStore(path, override, logger), path
}

func TestStore_RoundTrip(t *testing.T) {
	store, path := newTestStore(t, "")

	store.Set("tok123")

	assert.Equal(t, "tok123", store.Token())
	assert.True(t, store.Saved())

	// Re-reading from a fresh store exercises the file path, not memory.
	logger, _ := logging.NewTestLogger()
	fresh := NewStore(path, "", logger)
	assert.Equal(t, "tok123", fresh.Token())
}

func TestStore_FileFormat(t *testing.T) {
	store, path := newTestStore(t, "")
	store.Set("tok123")

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var tf struct {
		Token       string  `json:"token"`
		GeneratedAt float64 `json:"generated_at"`
	}
	require.NoError(t, json.Unmarshal(data, &tf))
	assert.Equal(t, "tok123", tf.Token)
	assert.Greater(t, tf.GeneratedAt, float64(0))
}

func TestStore_MissingFileIsAbsentNotError(t *testing.T) {
	store, _ := newTestStore(t, "")

	assert.Empty(t, store.Token())
	assert.False(t, store.Saved())
}

func TestStore_MalformedFileTreatedAsNoToken(t *testing.T) {
	store, path := newTestStore(t, "")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	assert.Empty(t, store.Token())
	assert.False(t, store.Saved())
}

func TestStore_SetOverwritesSlot(t *testing.T) {
	store, _ := newTestStore(t, "")
	store.Set("first")
	store.Set("second")

	assert.Equal(t, "second", store.Token())
}

func TestStore_EnvOverrideWins(t *testing.T) {
	store, _ := newTestStore(t, "env-token")
	store.Set("file-token")

	assert.Equal(t, "env-token", store.Token())
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "short", Preview("short"))
	assert.Equal(t, "abcdefghij...qrstuvwxyz",
		Preview("abcdefghijklmnopqrstuvwxyz"))
}
