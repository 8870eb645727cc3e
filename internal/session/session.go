// Package session holds the bearer token and the cached user profile
// between runs. One small JSON file, hydrated on start, written on login,
// removed on logout or a 401 from the backend.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gitlab.ozon.dev/qwestard/storefront/internal/models"
)

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user,omitempty"`
}

// Store is the file-backed session. Zero value is unusable; construct with
// New and call Hydrate before reading.
type Store struct {
	mu   sync.RWMutex
	path string
	cur  Session
}

func New(path string) *Store {
	return &Store{path: path}
}

// Hydrate loads the session file if it exists. A missing file is a valid
// logged-out state, not an error.
func (s *Store) Hydrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.cur = Session{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read session file: %w", err)
	}
	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return fmt.Errorf("parse session file: %w", err)
	}
	s.cur = sess
	return nil
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token != ""
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.Token
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cur.User
}

// SetSession replaces the whole session and persists it. Used on login.
func (s *Store) SetSession(token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{Token: token, User: user}
	return s.save()
}

// SetUser refreshes the cached profile without touching the token.
func (s *Store) SetUser(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.User = user
	return s.save()
}

// Clear wipes the in-memory session and removes the file. Used on logout
// and on a 401.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = Session{}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.MarshalIndent(s.cur, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}
