// Package session holds the console's authentication material and keeps it
// in durable storage so a restart does not force a new login.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"repairs/internal/model"
)

// DefaultKey is the namespace key the session is persisted under.
const DefaultKey = "repairs-auth"

// State is the authentication material held by a Store. The zero value is the
// unauthenticated state.
type State struct {
	AccessToken     string      `json:"accessToken"`
	RefreshToken    string      `json:"refreshToken"`
	User            *model.User `json:"user"`
	Role            *model.Role `json:"role"`
	IsAuthenticated bool        `json:"isAuthenticated"`
}

// envelope is the persisted shape.
type envelope struct {
	State   State `json:"state"`
	Version int   `json:"version"`
}

const envelopeVersion = 0

// Store is the single shared session. All methods are safe for concurrent
// use; concurrent mutations resolve as last write wins.
type Store struct {
	mu        sync.RWMutex
	state     State
	key       string
	persister Persister
}

// New builds a Store over persister and restores whatever was saved under
// key. An empty key means DefaultKey. A record that cannot be decoded is
// dropped and the store starts unauthenticated; a persister I/O failure is
// returned.
func New(ctx context.Context, persister Persister, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{key: key, persister: persister}

	raw, err := persister.Load(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Warn().Err(err).Str("store", persister.Name()).Msg("discarding unreadable session record")
		if err := persister.Clear(ctx, key); err != nil {
			log.Warn().Err(err).Msg("could not clear unreadable session record")
		}
		return s, nil
	}
	s.state = env.State
	return s, nil
}

// SetAuthenticated replaces every field and marks the session authenticated.
func (s *Store) SetAuthenticated(ctx context.Context, access, refresh string, user *model.User, role *model.Role) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		AccessToken:     access,
		RefreshToken:    refresh,
		User:            cloneUser(user),
		Role:            cloneRole(role),
		IsAuthenticated: true,
	}
	return s.persistLocked(ctx)
}

// SetUpdatedTokens swaps in a new token pair after a refresh exchange. User
// and role are left untouched.
func (s *Store) SetUpdatedTokens(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.AccessToken = access
	s.state.RefreshToken = refresh
	return s.persistLocked(ctx)
}

// Reset returns the store to the unauthenticated state and clears storage.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
	if err := s.persister.Clear(ctx, s.key); err != nil {
		return fmt.Errorf("session: clear: %w", err)
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.state
	st.User = cloneUser(st.User)
	st.Role = cloneRole(st.Role)
	return st
}

func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

func (s *Store) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.RefreshToken
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.IsAuthenticated
}

// Role returns a copy of the signed-in user's role, nil when there is none.
func (s *Store) Role() *model.Role {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRole(s.state.Role)
}

// AccessTokenExpiry reads the exp claim of the access token. The signature is
// not checked; the value is informational only.
func (s *Store) AccessTokenExpiry() (time.Time, bool) {
	return TokenExpiry(s.AccessToken())
}

// Key is the namespace key the session persists under.
func (s *Store) Key() string { return s.key }

// Backend names the persister in use.
func (s *Store) Backend() string { return s.persister.Name() }

func (s *Store) persistLocked(ctx context.Context) error {
	raw, err := json.Marshal(envelope{State: s.state, Version: envelopeVersion})
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}
	if err := s.persister.Save(ctx, s.key, raw); err != nil {
		return err
	}
	return nil
}

// TokenExpiry decodes the exp claim of a JWT without verifying it.
func TokenExpiry(token string) (time.Time, bool) {
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}

func cloneRole(r *model.Role) *model.Role {
	if r == nil {
		return nil
	}
	c := *r
	c.Permissions = append([]model.Permission(nil), r.Permissions...)
	return &c
}
