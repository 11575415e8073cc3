package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"devconnector/internal/config"
)

type item struct {
	Name string `json:"name"`
}

type failingStore struct{}

func (failingStore) GetJSON(context.Context, string, any) (bool, error) {
	return false, errors.New("down")
}
func (failingStore) SetJSON(context.Context, string, any, time.Duration) error {
	return errors.New("down")
}
func (failingStore) Delete(context.Context, string) error { return errors.New("down") }

func TestLocal_RoundTrip(t *testing.T) {
	ctx := context.Background()
	l := NewLocal(time.Minute, time.Minute)

	var got item
	if ok, _ := l.GetJSON(ctx, "k", &got); ok {
		t.Fatalf("expected miss")
	}
	if err := l.SetJSON(ctx, "k", item{Name: "a"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := l.GetJSON(ctx, "k", &got)
	if err != nil || !ok || got.Name != "a" {
		t.Fatalf("expected hit, got ok=%v err=%v item=%+v", ok, err, got)
	}
	_ = l.Delete(ctx, "k")
	if ok, _ := l.GetJSON(ctx, "k", &got); ok {
		t.Fatalf("expected miss after delete")
	}
}

func TestTiered_BackfillsEarlierTier(t *testing.T) {
	ctx := context.Background()
	front := NewLocal(time.Minute, time.Minute)
	back := NewLocal(time.Minute, time.Minute)
	if err := back.SetJSON(ctx, "k", item{Name: "b"}, 0); err != nil {
		t.Fatalf("set: %v", err)
	}

	tc := NewTiered(front, back)
	var got item
	ok, err := tc.GetJSON(ctx, "k", &got)
	if err != nil || !ok || got.Name != "b" {
		t.Fatalf("expected hit from back tier, got ok=%v err=%v", ok, err)
	}

	var fromFront item
	if ok, _ := front.GetJSON(ctx, "k", &fromFront); !ok || fromFront.Name != "b" {
		t.Fatalf("expected front tier backfill")
	}
}

func TestTiered_FailingTierIsAMiss(t *testing.T) {
	ctx := context.Background()
	local := NewLocal(time.Minute, time.Minute)
	tc := NewTiered(failingStore{}, local)

	if err := tc.SetJSON(ctx, "k", item{Name: "c"}, time.Minute); err == nil {
		t.Fatalf("expected first tier error to surface")
	}

	var got item
	ok, err := tc.GetJSON(ctx, "k", &got)
	if err != nil || !ok || got.Name != "c" {
		t.Fatalf("expected hit from healthy tier, got ok=%v err=%v", ok, err)
	}
}

func TestRedis_DisabledBypassesWithoutDialing(t *testing.T) {
	ctx := context.Background()
	start := time.Now()
	r := NewRedis(config.RedisConfig{Host: "127.0.0.1", Port: "1", Disabled: true}, nil)
	if time.Since(start) > 500*time.Millisecond {
		t.Fatalf("disabled redis should not dial")
	}

	var got item
	if ok, err := r.GetJSON(ctx, "k", &got); ok || err != nil {
		t.Fatalf("expected silent miss, got ok=%v err=%v", ok, err)
	}
	if err := r.SetJSON(ctx, "k", item{Name: "a"}, 0); err != nil {
		t.Fatalf("expected no-op set, got %v", err)
	}
	if err := r.Ping(ctx); err == nil {
		t.Fatalf("expected ping to report unavailable")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
