package cache

import (
	"context"
	"time"
)

type Store interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Tiered reads through its stores in order and writes to all of them.
// A hit in a later tier backfills the earlier ones. Tier errors are treated
// as misses on read; on write the first error is returned after every tier
// has been attempted.
type Tiered struct {
	tiers []Store
}

func NewTiered(tiers ...Store) *Tiered {
	out := make([]Store, 0, len(tiers))
	for _, t := range tiers {
		if t != nil {
			out = append(out, t)
		}
	}
	return &Tiered{tiers: out}
}

func (t *Tiered) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	for i, tier := range t.tiers {
		ok, err := tier.GetJSON(ctx, key, out)
		if err != nil || !ok {
			continue
		}
		for j := 0; j < i; j++ {
			_ = t.tiers[j].SetJSON(ctx, key, out, 0)
		}
		return true, nil
	}
	return false, nil
}

func (t *Tiered) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	var firstErr error
	for _, tier := range t.tiers {
		if err := tier.SetJSON(ctx, key, value, ttl); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (t *Tiered) Delete(ctx context.Context, key string) error {
	var firstErr error
	for _, tier := range t.tiers {
		if err := tier.Delete(ctx, key); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
