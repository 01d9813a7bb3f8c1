package api

import (
	"context"
	"net/http"

	"github.com/eddiesosera/bb-frontend/internal/models"
)

type articleListEnvelope struct {
	Docs []models.Article `json:"docs"`
}

// ListArticles fetches the full article collection in server order.
func (c *Client) ListArticles(ctx context.Context) ([]models.Article, error) {
	var res articleListEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/articles", "", nil, &res, "Failed to fetch articles"); err != nil {
		return nil, err
	}
	for _, article := range res.Docs {
		if article.ID == "" {
			return nil, &Error{Kind: KindServer, Message: "Failed to fetch articles"}
		}
	}
	return res.Docs, nil
}

// GetArticle fetches a single article by its slug.
func (c *Client) GetArticle(ctx context.Context, slug string) (models.Article, error) {
	var res models.Article
	if err := c.do(ctx, http.MethodGet, "/api/articles/"+slug, "", nil, &res, "Failed to fetch article"); err != nil {
		return models.Article{}, err
	}
	if res.ID == "" {
		return models.Article{}, &Error{Kind: KindServer, Message: "Failed to fetch article"}
	}
	return res, nil
}

// CreateArticle submits a draft. The server assigns the identifier; the
// returned article is the committed record.
func (c *Client) CreateArticle(ctx context.Context, token string, draft models.Draft) (models.Article, error) {
	var res models.Article
	if err := c.do(ctx, http.MethodPost, "/api/articles", token, draft, &res, "An unexpected error occurred"); err != nil {
		return models.Article{}, err
	}
	if res.ID == "" {
		return models.Article{}, &Error{Kind: KindServer, Message: "An unexpected error occurred"}
	}
	return res, nil
}

// DeleteArticle removes the article with the given identifier.
func (c *Client) DeleteArticle(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/articles/id/"+id, token, nil, nil, "An unexpected error occurred")
}
