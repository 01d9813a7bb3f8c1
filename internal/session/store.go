// Package session owns the client's authenticated identity: the bearer token,
// the author identifier, and the fetched profile. All authentication network
// actions are mediated here.
package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/eddiesosera/bb-frontend/internal/api"
	"github.com/eddiesosera/bb-frontend/internal/credentials"
	"github.com/eddiesosera/bb-frontend/internal/models"
)

// ErrUnauthenticated indicates an action that requires a held credential was
// dispatched without one. No network call is made in that case.
var ErrUnauthenticated = errors.New("not authenticated")

// API captures the authentication calls the store dispatches.
type API interface {
	Register(ctx context.Context, username, email, password string) (api.AuthResult, error)
	Login(ctx context.Context, username, password string) (api.AuthResult, error)
	CurrentUser(ctx context.Context, token, authorID string) (models.Author, error)
}

// Snapshot is a point-in-time copy of the session state for rendering.
type Snapshot struct {
	Token     string
	AuthorID  string
	Author    *models.Author
	Loading   bool
	LastError string
}

// Store is the single source of truth for session state. Overlapping actions
// are allowed; the last response to resolve wins. A generation counter guards
// cleared state: logout and session invalidation bump it, and any in-flight
// response carrying a stale generation is discarded on arrival.
type Store struct {
	apiClient API
	creds     credentials.Store
	logger    *slog.Logger

	mu       sync.Mutex
	token    string
	authorID string
	author   *models.Author
	inFlight int
	lastErr  string
	gen      uint64
}

// NewStore constructs an empty session store.
func NewStore(apiClient API, creds credentials.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{apiClient: apiClient, creds: creds, logger: logger}
}

// Hydrate seeds the session from durable storage. A missing credential leaves
// the store empty; the profile is not fetched here.
func (s *Store) Hydrate(ctx context.Context) error {
	creds, err := s.creds.Load(ctx)
	if err != nil {
		if errors.Is(err, credentials.ErrNotFound) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	s.token = creds.Token
	s.authorID = creds.AuthorID
	s.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	var author *models.Author
	if s.author != nil {
		copied := *s.author
		author = &copied
	}
	return Snapshot{
		Token:     s.token,
		AuthorID:  s.authorID,
		Author:    author,
		Loading:   s.inFlight > 0,
		LastError: s.lastErr,
	}
}

// Token returns the held bearer token, empty when logged out. The view layer
// forwards it to actions that require authorization.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Register creates an account and commits the returned session.
func (s *Store) Register(ctx context.Context, username, email, password string) error {
	gen := s.begin()
	defer s.end()

	res, err := s.apiClient.Register(ctx, username, email, password)
	if err != nil {
		s.recordError(gen, api.Message(err, "Registration failed"))
		return err
	}

	s.commit(ctx, gen, res)
	return nil
}

// Login authenticates and commits the returned session.
func (s *Store) Login(ctx context.Context, username, password string) error {
	gen := s.begin()
	defer s.end()

	res, err := s.apiClient.Login(ctx, username, password)
	if err != nil {
		s.recordError(gen, api.Message(err, "Login failed"))
		return err
	}

	s.commit(ctx, gen, res)
	return nil
}

// FetchCurrentUser refreshes the profile for the held credential. Without a
// token and author identifier it fails immediately and no network call is
// made. An authentication-class failure invalidates the in-memory session;
// transient failures only record an error and leave the credential in place.
func (s *Store) FetchCurrentUser(ctx context.Context) error {
	s.mu.Lock()
	token, authorID := s.token, s.authorID
	if token == "" || authorID == "" {
		s.lastErr = "No token or authorId found"
		s.mu.Unlock()
		return ErrUnauthenticated
	}
	s.mu.Unlock()

	gen := s.begin()
	defer s.end()

	author, err := s.apiClient.CurrentUser(ctx, token, authorID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return err
	}

	if err != nil {
		s.lastErr = api.Message(err, "Failed to fetch user")
		if api.IsAuth(err) {
			s.logger.Warn("session invalidated by failed profile fetch", "authorId", authorID)
			s.token = ""
			s.authorID = ""
			s.author = nil
			s.gen++
		}
		return err
	}

	s.author = &author
	return nil
}

// Logout clears the session and removes the persisted credential. It always
// succeeds; in-flight responses arriving afterwards are discarded.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.token = ""
	s.authorID = ""
	s.author = nil
	s.lastErr = ""
	s.gen++
	s.mu.Unlock()

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Warn("clear persisted credentials", "error", err)
	}
}

// ResetError clears the last recorded error after it has been surfaced.
func (s *Store) ResetError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// begin marks an action as in flight and clears any prior error, returning
// the generation the eventual response must match to be applied.
func (s *Store) begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight++
	s.lastErr = ""
	return s.gen
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

func (s *Store) recordError(gen uint64, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.lastErr = message
}

// commit applies a successful auth result and persists the credential.
func (s *Store) commit(ctx context.Context, gen uint64, res api.AuthResult) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.token = res.Token
	s.authorID = res.Author.ID
	author := res.Author
	s.author = &author
	s.mu.Unlock()

	err := s.creds.Save(ctx, credentials.Credentials{Token: res.Token, AuthorID: res.Author.ID})
	if err != nil {
		s.logger.Warn("persist credentials", "authorId", res.Author.ID, "error", err)
	}
}
