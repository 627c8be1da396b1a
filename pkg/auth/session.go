package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/harrisonrobin/taskdeck/pkg/config"
	"golang.org/x/oauth2"
)

// SessionFile is the bearer token cache for the task service.
const SessionFile = "session.json"

// ErrNoSession is returned when no bearer token has been stored.
var ErrNoSession = errors.New("no session token stored")

// sessionDoc mirrors the two keys the web client used for the same token.
type sessionDoc struct {
	SessionToken string `json:"session_token,omitempty"`
	Token        string `json:"token,omitempty"`
}

// SessionStore keeps the task service bearer token on disk. The token is
// never refreshed: once it expires requests fail until a new one is set.
type SessionStore struct {
	Path string

	mu    sync.Mutex
	token string
	read  bool
}

func NewSessionStore(path string) *SessionStore {
	return &SessionStore{Path: path}
}

// DefaultSessionStore keeps the token in the config directory.
func DefaultSessionStore() (*SessionStore, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return NewSessionStore(filepath.Join(dir, SessionFile)), nil
}

// Load returns the stored token, preferring session_token over token. An
// empty string means there is none.
func (s *SessionStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.read {
		return s.token, nil
	}

	b, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			s.read = true
			return "", nil
		}
		return "", fmt.Errorf("failed to read session file: %w", err)
	}
	var doc sessionDoc
	if err := json.Unmarshal(b, &doc); err != nil {
		return "", fmt.Errorf("failed to decode session file %s: %w", s.Path, err)
	}
	s.token = doc.SessionToken
	if s.token == "" {
		s.token = doc.Token
	}
	s.read = true
	return s.token, nil
}

// Set stores token under both keys. An empty token clears the session.
func (s *SessionStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		if err := os.Remove(s.Path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clear session: %w", err)
		}
		s.token, s.read = "", true
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(s.Path), 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	b, err := json.Marshal(sessionDoc{SessionToken: token, Token: token})
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.Path, b, 0600); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	s.token, s.read = token, true
	return nil
}

// Token implements oauth2.TokenSource.
func (s *SessionStore) Token() (*oauth2.Token, error) {
	tok, err := s.Load()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return nil, ErrNoSession
	}
	return &oauth2.Token{AccessToken: tok, TokenType: "Bearer"}, nil
}
