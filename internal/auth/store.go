// Package auth owns the Polarion bearer token: a single-slot credential
// persisted to a JSON file and optionally overridden by the environment.
//
// Persistence is best-effort. A failed save or a malformed file is logged
// and treated as "no token" — callers never see a storage error, they see
// an authentication failure on the next API call instead.
package auth

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/atoms-tech/polarion-mcp/internal/logging"
)

// tokenFile is the on-disk shape: {"token": "...", "generated_at": epoch}.
type tokenFile struct {
	Token       string  `json:"token"`
	GeneratedAt float64 `json:"generated_at"`
}

// Store holds the credential in memory and mirrors it to a file.
// Safe for concurrent use by overlapping tool invocations.
type Store struct {
	mu       sync.Mutex
	path     string
	override string
	token    string
	logger   *logging.AppLogger
}

// NewStore creates a token store backed by the file at path. When
// override is non-empty (POLARION_TOKEN), it wins over both the
// in-memory token and the file, and Set never changes what Token returns.
func NewStore(path, override string, logger *logging.AppLogger) *Store {
	return &Store{path: path, override: override, logger: logger}
}

// Set records the token in memory and persists it, overwriting any
// previous slot contents.
func (s *Store) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.save(token)
}

// Token resolves the current credential: environment override, then the
// in-memory token, then the file. Returns "" when no token is available.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.override != "" {
		return s.override
	}
	if s.token != "" {
		return s.token
	}
	return s.load()
}

// Saved reports whether a token file exists on disk with a readable token.
func (s *Store) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load() != ""
}

// save writes the token file. Errors are logged, never returned.
func (s *Store) save(token string) {
	data, err := json.Marshal(tokenFile{
		Token:       token,
		GeneratedAt: float64(time.Now().Unix()),
	})
	if err != nil {
		s.logger.Error("marshaling token file", "error", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		s.logger.Error("saving token file", "path", s.path, "error", err)
	}
}

// load reads the token back from disk, returning "" on any failure.
func (s *Store) load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("reading token file", "path", s.path, "error", err)
		}
		return ""
	}
	var tf tokenFile
	if err := json.Unmarshal(data, &tf); err != nil {
		s.logger.Warn("token file malformed, ignoring", "path", s.path, "error", err)
		return ""
	}
	return tf.Token
}

// Preview returns a redacted form of a token for envelopes: the first
// and last ten characters. Short tokens are returned as-is.
func Preview(token string) string {
	if len(token) <= 20 {
		return token
	}
	return token[:10] + "..." + token[len(token)-10:]
}
