// Package session holds the access credential and derived role for the
// client. It is the single source of truth for "is a user logged in"
// and "is that user an admin", persisted across runs in a local file.
package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Role classifies the current session for route decisions.
type Role int

const (
	// RoleGuest means no valid credential is present.
	RoleGuest Role = iota
	// RoleUser means a valid non-admin credential is present.
	RoleUser
	// RoleAdmin means a valid credential with the admin flag is present.
	RoleAdmin
)

// String returns the role name.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "guest"
	}
}

// Credential is the bearer token plus the claim set derived from it.
// The admin flag is the value issued at login time, not a token claim.
type Credential struct {
	// Token is the opaque bearer token attached to authorized requests.
	Token string
	// Subject is the identity extracted from the token.
	Subject string
	// ExpiresAt is the token expiry extracted from the token; zero when
	// the token carries no expiry.
	ExpiresAt time.Time
	// IsAdmin is the admin flag returned by the login endpoint.
	IsAdmin bool
}

// state is the durable on-disk form of the session.
type state struct {
	Token   string `json:"token"`
	IsAdmin bool   `json:"is_admin"`
}

// Store reads and writes the durable credential. Only the login,
// logout and invalidity-detection paths write; everything else reads.
type Store struct {
	path string

	mu   sync.Mutex
	cred *Credential
}

// NewStore creates a Store backed by the file at path and loads any
// persisted credential. A structurally invalid or expired persisted
// token is discarded immediately.
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the state file and validates the stored token.
func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		// A corrupt state file is treated like an invalid token.
		return os.Remove(s.path)
	}
	cred, ok := decode(st.Token, st.IsAdmin)
	if !ok {
		return os.Remove(s.path)
	}
	s.cred = cred
	return nil
}

// decode structurally parses a raw token without verifying its
// signature (that is the server's responsibility) and extracts the
// subject and expiry. It reports false for an unparseable or expired
// token.
func decode(raw string, isAdmin bool) (*Credential, bool) {
	if raw == "" {
		return nil, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return nil, false
	}
	cred := &Credential{Token: raw, IsAdmin: isAdmin}
	if sub, err := claims.GetSubject(); err == nil {
		cred.Subject = sub
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		if exp.Before(time.Now()) {
			return nil, false
		}
		cred.ExpiresAt = exp.Time
	}
	return cred, true
}

// SetCredential stores the raw token and the admin flag issued at login
// and persists them. The token must be structurally valid.
func (s *Store) SetCredential(raw string, isAdmin bool) error {
	cred, ok := decode(raw, isAdmin)
	if !ok {
		return ErrInvalidToken
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	return s.save(state{Token: raw, IsAdmin: isAdmin})
}

// Credential returns the current credential, if any. A credential that
// expired since it was stored is cleared as a side effect.
func (s *Store) Credential() (Credential, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cred == nil {
		return Credential{}, false
	}
	if !s.cred.ExpiresAt.IsZero() && s.cred.ExpiresAt.Before(time.Now()) {
		s.cred = nil
		_ = os.Remove(s.path)
		return Credential{}, false
	}
	return *s.cred, true
}

// Token returns the raw bearer token, or "" when logged out.
func (s *Store) Token() string {
	cred, ok := s.Credential()
	if !ok {
		return ""
	}
	return cred.Token
}

// Role reports the role of the current session.
func (s *Store) Role() Role {
	cred, ok := s.Credential()
	switch {
	case !ok:
		return RoleGuest
	case cred.IsAdmin:
		return RoleAdmin
	default:
		return RoleUser
	}
}

// Clear removes the credential and its durable state. Called on logout
// and whenever an unauthorized response reveals the token is no longer
// accepted.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cred = nil
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// save writes the durable state. Callers hold s.mu.
func (s *Store) save(st state) error {
	data, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
