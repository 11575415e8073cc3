package cache

import (
	"context"
	"encoding/json"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Local is an in-process tier. Values are kept as encoded JSON so a hit
// never aliases memory held by a previous caller.
type Local struct {
	c *gocache.Cache
}

func NewLocal(defaultTTL, cleanupInterval time.Duration) *Local {
	return &Local{c: gocache.New(defaultTTL, cleanupInterval)}
}

func (l *Local) GetJSON(_ context.Context, key string, out any) (bool, error) {
	v, ok := l.c.Get(key)
	if !ok {
		return false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		l.c.Delete(key)
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

func (l *Local) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	l.c.Set(key, b, ttl)
	return nil
}

func (l *Local) Delete(_ context.Context, key string) error {
	l.c.Delete(key)
	return nil
}
