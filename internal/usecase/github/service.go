package github

import (
	"context"
	"log"
	"strings"
	"time"

	"devconnector/internal/infrastructure/cache"
	gh "devconnector/internal/infrastructure/github"
)

const cacheKeyPrefix = "github:repos:"

type Service struct {
	client gh.Client
	cache  cache.Store
	ttl    time.Duration
	logger *log.Logger
}

// NewService wraps client with a read-through cache. A nil store disables
// caching.
func NewService(client gh.Client, store cache.Store, ttl time.Duration, logger *log.Logger) *Service {
	return &Service{client: client, cache: store, ttl: ttl, logger: logger}
}

func (s *Service) ListRepos(ctx context.Context, username string) ([]gh.Repo, error) {
	username = strings.TrimSpace(username)
	key := cacheKey(username)

	if s.cache != nil {
		var cached []gh.Repo
		ok, err := s.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			s.logf("[GitHub] cache read failed key=%s err=%v", key, err)
		}
		if ok {
			return cached, nil
		}
	}

	repos, err := s.client.ListRepos(ctx, username)
	if err != nil {
		return nil, err
	}
	if repos == nil {
		repos = []gh.Repo{}
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, repos, s.ttl); err != nil {
			s.logf("[GitHub] cache write failed key=%s err=%v", key, err)
		}
	}
	return repos, nil
}

func cacheKey(username string) string {
	return cacheKeyPrefix + strings.ToLower(username)
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
