package models

import (
	"net/url"
	"strings"
	"time"
)

// Author represents an account on the blog platform.
type Author struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// Article is a published blog post as returned by the API. The identifier is
// always server-assigned; a client never fabricates one.
type Article struct {
	ID         string    `json:"_id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Category   string    `json:"category"`
	ImageCover string    `json:"imageCover,omitempty"`
	AuthorID   string    `json:"author"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Draft holds unsaved article data prior to a successful create call.
type Draft struct {
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	ImageCover string `json:"imageCover,omitempty"`
	AuthorID   string `json:"author,omitempty"`
}

// ValidationError reports a field-level problem with user input. It is
// resolved at the form boundary and never recorded on a store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks the draft the same way the submission form does. The first
// failing field wins.
func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Message: "Title is required"}
	}
	if strings.TrimSpace(d.Content) == "" {
		return &ValidationError{Field: "content", Message: "Content is required"}
	}
	if strings.TrimSpace(d.Category) == "" {
		return &ValidationError{Field: "category", Message: "Category is required"}
	}
	if d.ImageCover != "" {
		u, err := url.Parse(d.ImageCover)
		if err != nil || !u.IsAbs() || u.Host == "" {
			return &ValidationError{Field: "imageCover", Message: "Must be a valid URL"}
		}
	}
	return nil
}
