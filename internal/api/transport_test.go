package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func TestTransportSetsRequestID(t *testing.T) {
	var gotID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-ID")
	}))
	defer srv.Close()

	client := &http.Client{Transport: &Transport{}}
	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()

	if gotID == "" {
		t.Fatal("expected X-Request-ID header to be set")
	}
}

func TestTransportThrottles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	defer srv.Close()

	// One token refilling every 50ms: the second request must wait.
	limiter := rate.NewLimiter(rate.Every(50*time.Millisecond), 1)
	client := &http.Client{Transport: &Transport{Limiter: limiter}}

	start := time.Now()
	for i := 0; i < 2; i++ {
		resp, err := client.Get(srv.URL)
		if err != nil {
			t.Fatalf("request %d: %v", i, err)
		}
		resp.Body.Close()
	}

	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Fatalf("expected throttling delay, both requests finished in %v", elapsed)
	}
}
