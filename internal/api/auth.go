package api

import (
	"context"
	"net/http"

	"github.com/eddiesosera/bb-frontend/internal/models"
)

// AuthResult is the payload returned by a successful register or login call.
type AuthResult struct {
	Author models.Author `json:"author"`
	Token  string        `json:"token"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type authorEnvelope struct {
	Author models.Author `json:"author"`
}

// Register creates a new account and returns its profile and bearer token.
func (c *Client) Register(ctx context.Context, username, email, password string) (AuthResult, error) {
	var res AuthResult
	req := registerRequest{Username: username, Email: email, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &res, "Registration failed"); err != nil {
		return AuthResult{}, err
	}
	if err := checkAuthResult(res, "Registration failed"); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// Login exchanges credentials for a profile and bearer token.
func (c *Client) Login(ctx context.Context, username, password string) (AuthResult, error) {
	var res AuthResult
	req := loginRequest{Username: username, Password: password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", req, &res, "Login failed"); err != nil {
		return AuthResult{}, err
	}
	if err := checkAuthResult(res, "Login failed"); err != nil {
		return AuthResult{}, err
	}
	return res, nil
}

// CurrentUser fetches the profile belonging to the held credential.
func (c *Client) CurrentUser(ctx context.Context, token, authorID string) (models.Author, error) {
	var res authorEnvelope
	if err := c.do(ctx, http.MethodGet, "/api/auth/"+authorID, token, nil, &res, "Failed to fetch user"); err != nil {
		return models.Author{}, err
	}
	if res.Author.ID == "" {
		return models.Author{}, &Error{Kind: KindServer, Message: "Failed to fetch user"}
	}
	return res.Author, nil
}

// checkAuthResult rejects responses missing the fields a committed session
// depends on, so undefined state never reaches the stores.
func checkAuthResult(res AuthResult, fallback string) error {
	if res.Token == "" || res.Author.ID == "" {
		return &Error{Kind: KindServer, Message: fallback}
	}
	return nil
}
