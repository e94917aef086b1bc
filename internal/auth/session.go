// Package auth holds the client-side session: the bearer token and user
// profile returned by the auth endpoints, persisted to a local file and read
// back to gate protected commands.
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jonathan/career-mentor/internal/types"
)

// ErrNotAuthenticated is returned when a protected command runs without a
// valid, unexpired session.
var ErrNotAuthenticated = errors.New("not logged in; run 'mentor login' first")

// Session is the persisted login state.
type Session struct {
	Token string     `json:"token"`
	User  types.User `json:"user"`
}

// Authenticated reports whether the session carries a token that has not
// expired. The token is parsed without signature verification; the client has
// no key and the backend re-checks on every request anyway.
func (s *Session) Authenticated() bool {
	if s == nil || s.Token == "" {
		return false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		// No expiry claim: trust it until the backend rejects it.
		return true
	}
	return exp.After(time.Now())
}

// ExpiresAt returns the token expiry, if present.
func (s *Session) ExpiresAt() (time.Time, bool) {
	if s == nil || s.Token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// Store reads and writes the session file. The file plays the role browser
// local storage plays in the web client.
type Store struct {
	path string
}

// NewStore creates a store for the given session file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load reads the persisted session. A missing file means no session and
// returns (nil, nil).
func (st *Store) Load() (*Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file %s: %w", st.path, err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session file %s: %w", st.path, err)
	}
	return &session, nil
}

// Save writes the session with owner-only permissions.
func (st *Store) Save(session *Session) error {
	if err := os.MkdirAll(filepath.Dir(st.path), 0o700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}

	data, err := json.MarshalIndent(session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	if err := os.WriteFile(st.path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write session file %s: %w", st.path, err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an error.
func (st *Store) Clear() error {
	err := os.Remove(st.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file %s: %w", st.path, err)
	}
	return nil
}

// Require loads the session and refuses when it is missing or expired.
func (st *Store) Require() (*Session, error) {
	session, err := st.Load()
	if err != nil {
		return nil, err
	}
	if !session.Authenticated() {
		return nil, ErrNotAuthenticated
	}
	return session, nil
}
