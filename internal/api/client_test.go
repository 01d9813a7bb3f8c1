package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/eddiesosera/bb-frontend/internal/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New(srv.URL, Options{HTTPClient: srv.Client()})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, srv
}

func TestListArticles(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/articles" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"docs":[{"_id":"a1","title":"Hi"},{"_id":"a2","title":"Second"}]}`))
	}))

	docs, err := client.ListArticles(context.Background())
	if err != nil {
		t.Fatalf("list articles: %v", err)
	}
	if len(docs) != 2 || docs[0].ID != "a1" || docs[0].Title != "Hi" {
		t.Fatalf("unexpected docs %+v", docs)
	}
}

func TestListArticlesRejectsMissingIdentifier(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs":[{"title":"no id"}]}`))
	}))

	_, err := client.ListArticles(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected server-kind error, got %v", err)
	}
}

func TestCreateArticleSendsBearerToken(t *testing.T) {
	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"_id":"a9","title":"X","content":"body","category":"go"}`))
	}))

	article, err := client.CreateArticle(context.Background(), "t1", models.Draft{Title: "X", Content: "body", Category: "go"})
	if err != nil {
		t.Fatalf("create article: %v", err)
	}
	if gotAuth != "Bearer t1" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if article.ID != "a9" {
		t.Fatalf("unexpected article %+v", article)
	}
}

func TestCreateArticleNormalizesServerMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Title is required"}`))
	}))

	_, err := client.CreateArticle(context.Background(), "t1", models.Draft{})
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if apiErr.Kind != KindServer || apiErr.Message != "Title is required" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
}

func TestUnauthorizedResponseIsAuthKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid token"}`))
	}))

	_, err := client.CurrentUser(context.Background(), "bad", "u1")
	if !IsAuth(err) {
		t.Fatalf("expected auth-kind error, got %v", err)
	}
	if Message(err, "fallback") != "invalid token" {
		t.Fatalf("expected server message, got %q", Message(err, "fallback"))
	}
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	client, err := New(srv.URL, Options{})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	srv.Close()

	_, err = client.ListArticles(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindNetwork {
		t.Fatalf("expected network-kind error, got %v", err)
	}
	if apiErr.Message != "Failed to fetch articles" {
		t.Fatalf("expected normalized fallback, got %q", apiErr.Message)
	}
}

func TestMalformedPayloadIsServerKind(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"docs": not json`))
	}))

	_, err := client.ListArticles(context.Background())
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer {
		t.Fatalf("expected server-kind error, got %v", err)
	}
}

func TestLoginValidatesResponseShape(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"author":{"username":"alice"}}`))
	}))

	_, err := client.Login(context.Background(), "alice", "secret")
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Kind != KindServer || apiErr.Message != "Login failed" {
		t.Fatalf("expected normalized server error, got %v", err)
	}
}

func TestDeleteArticle(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/articles/id/a1" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.DeleteArticle(context.Background(), "t1", "a1"); err != nil {
		t.Fatalf("delete article: %v", err)
	}
}
