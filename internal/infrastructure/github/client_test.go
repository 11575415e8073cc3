package github

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"devconnector/internal/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc, logger *log.Logger) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(config.GitHubConfig{
		BaseURL:      srv.URL,
		ClientID:     "id",
		ClientSecret: "secret",
		Timeout:      time.Second,
	}, "devconnector-test", logger)
}

func TestListRepos_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/users/octo/repos" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("per_page") != "5" || q.Get("sort") != "created" || q.Get("direction") != "desc" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if id, secret, ok := r.BasicAuth(); !ok || id != "id" || secret != "secret" {
			t.Errorf("missing client credentials")
		}
		if r.Header.Get("User-Agent") != "devconnector-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`[{"id":1,"name":"a","html_url":"https://github.com/octo/a","description":null,"stargazers_count":3},{"id":2,"name":"b"}]`))
	}, nil)

	repos, err := c.ListRepos(context.Background(), "octo")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(repos) != 2 || repos[0].Name != "a" || repos[0].StargazersCount != 3 {
		t.Fatalf("unexpected repos %+v", repos)
	}
}

func TestListRepos_NotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)

	if _, err := c.ListRepos(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListRepos_UpstreamErrorIsLoggedNotRelayed(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"API rate limit exceeded"}`))
	}, logger)

	_, err := c.ListRepos(context.Background(), "octo")
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if strings.Contains(err.Error(), "rate limit") {
		t.Fatalf("upstream body leaked into error: %v", err)
	}
	if !strings.Contains(buf.String(), "rate limit") {
		t.Fatalf("expected upstream body in log, got %q", buf.String())
	}
}

func TestListRepos_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	c := NewClient(config.GitHubConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, "ua", nil)
	if _, err := c.ListRepos(context.Background(), "slow"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream on timeout, got %v", err)
	}
}
