package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"devconnector/internal/config"
)

const maxRepos = 5

var (
	ErrNotFound = errors.New("github user not found")
	ErrUpstream = errors.New("github upstream error")
)

type Repo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type Client interface {
	ListRepos(ctx context.Context, username string) ([]Repo, error)
}

type httpClient struct {
	baseURL      string
	clientID     string
	clientSecret string
	userAgent    string
	client       *http.Client
	logger       *log.Logger
}

func NewClient(cfg config.GitHubConfig, userAgent string, logger *log.Logger) Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		userAgent:    userAgent,
		client:       &http.Client{Timeout: timeout},
		logger:       logger,
	}
}

// ListRepos returns the most recently created public repositories of username.
func (c *httpClient) ListRepos(ctx context.Context, username string) ([]Repo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrNotFound
	}

	q := url.Values{}
	q.Set("per_page", fmt.Sprint(maxRepos))
	q.Set("sort", "created")
	q.Set("direction", "desc")
	endpoint := c.baseURL + "/users/" + url.PathEscape(username) + "/repos?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.clientID != "" && c.clientSecret != "" {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logf("[GitHub] ListRepos transport error username=%s err=%v", username, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		rb, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		bodyStr := strings.TrimSpace(string(rb))
		c.logf("[GitHub] ListRepos error username=%s status=%d body=%q", username, resp.StatusCode, bodyStr)
		return nil, fmt.Errorf("%w: status=%d", ErrUpstream, resp.StatusCode)
	}

	var out []Repo
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		c.logf("[GitHub] ListRepos decode error username=%s err=%v", username, err)
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(out) > maxRepos {
		out = out[:maxRepos]
	}
	return out, nil
}

func (c *httpClient) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}

var _ Client = (*httpClient)(nil)
