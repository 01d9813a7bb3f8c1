// Package articles owns the article collection and single-article view. The
// stored order is always server response order; the collection never holds two
// entries with the same identifier.
package articles

import (
	"context"
	"log/slog"
	"sync"

	"github.com/eddiesosera/bb-frontend/internal/api"
	"github.com/eddiesosera/bb-frontend/internal/models"
)

// API captures the article calls the store dispatches. Authorized calls take a
// caller-supplied bearer token; the store does not reach into the session.
type API interface {
	ListArticles(ctx context.Context) ([]models.Article, error)
	GetArticle(ctx context.Context, slug string) (models.Article, error)
	CreateArticle(ctx context.Context, token string, draft models.Draft) (models.Article, error)
	DeleteArticle(ctx context.Context, token, id string) error
}

// Snapshot is a point-in-time copy of the collection state for rendering.
type Snapshot struct {
	Items     []models.Article
	Current   *models.Article
	Loading   bool
	LastError string
}

// Store is the single source of truth for the article collection. Overlapping
// actions race freely; each response is applied in arrival order.
type Store struct {
	apiClient API
	logger    *slog.Logger

	mu       sync.Mutex
	items    []models.Article
	current  *models.Article
	inFlight int
	lastErr  string
}

// NewStore constructs an empty article store.
func NewStore(apiClient API, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{apiClient: apiClient, logger: logger}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]models.Article, len(s.items))
	copy(items, s.items)

	var current *models.Article
	if s.current != nil {
		copied := *s.current
		current = &copied
	}
	return Snapshot{
		Items:     items,
		Current:   current,
		Loading:   s.inFlight > 0,
		LastError: s.lastErr,
	}
}

// List fetches the full collection, replacing the stored items wholesale on
// success. On failure the prior items are left untouched.
func (s *Store) List(ctx context.Context) error {
	s.begin()
	defer s.end()

	docs, err := s.apiClient.ListArticles(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = api.Message(err, "Failed to fetch articles")
		return err
	}
	s.items = docs
	return nil
}

// Get fetches a single article by slug into the current-article view.
func (s *Store) Get(ctx context.Context, slug string) error {
	s.begin()
	defer s.end()

	article, err := s.apiClient.GetArticle(ctx, slug)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = api.Message(err, "Failed to fetch article")
		return err
	}
	s.current = &article
	return nil
}

// Create submits a draft with the supplied bearer token. On success the
// committed article is appended; if its identifier is already present the
// existing entry is replaced instead, keeping the collection duplicate-free.
func (s *Store) Create(ctx context.Context, token string, draft models.Draft) (models.Article, error) {
	s.begin()
	defer s.end()

	article, err := s.apiClient.CreateArticle(ctx, token, draft)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = api.Message(err, "An unexpected error occurred")
		return models.Article{}, err
	}

	replaced := false
	for i := range s.items {
		if s.items[i].ID == article.ID {
			s.items[i] = article
			replaced = true
			break
		}
	}
	if !replaced {
		s.items = append(s.items, article)
	}
	return article, nil
}

// Delete removes the article with the given identifier. Removal of an absent
// identifier is a no-op; the call is idempotent from the store's view.
func (s *Store) Delete(ctx context.Context, token, id string) error {
	s.begin()
	defer s.end()

	err := s.apiClient.DeleteArticle(ctx, token, id)
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastErr = api.Message(err, "An unexpected error occurred")
		return err
	}

	kept := s.items[:0]
	for _, article := range s.items {
		if article.ID != id {
			kept = append(kept, article)
		}
	}
	s.items = kept

	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	return nil
}

// ResetError clears the last recorded error after it has been surfaced.
func (s *Store) ResetError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) begin() {
	s.mu.Lock()
	s.inFlight++
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}
