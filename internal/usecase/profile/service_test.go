package profile

import (
	"context"
	"errors"
	"testing"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"
	"devconnector/internal/infrastructure/persistence/memory"

	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

func newTestService(t *testing.T) (*Service, *memory.Store, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	uid := uuid.New()
	if err := store.Users().Create(context.Background(), user.User{ID: uid, Name: "Ada", Email: "ada@example.com", Avatar: "//avatar"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return NewService(store.Profiles(), store.Users(), store.Posts()), store, uid
}

func TestUpsert_IdempotentOnIdenticalInput(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()
	f := profile.Fields{Status: strPtr("dev"), Skills: profile.ParseSkills("js, node , react")}

	first, err := svc.Upsert(ctx, uid, f)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	second, err := svc.Upsert(ctx, uid, f)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected same profile, got %s and %s", first.ID, second.ID)
	}
	want := []string{"js", "node", "react"}
	if len(second.Skills) != len(want) {
		t.Fatalf("unexpected skills %v", second.Skills)
	}
	for i := range want {
		if second.Skills[i] != want[i] {
			t.Fatalf("unexpected skills %v", second.Skills)
		}
	}
	if second.User.Name != "Ada" || second.User.Avatar != "//avatar" {
		t.Fatalf("owner not populated: %+v", second.User)
	}

	all, err := svc.ListAll(ctx)
	if err != nil || len(all) != 1 {
		t.Fatalf("expected exactly one profile, got %d err=%v", len(all), err)
	}
}

func TestUpsert_MissingRequiredWithoutProfile(t *testing.T) {
	svc, _, uid := newTestService(t)

	_, err := svc.Upsert(context.Background(), uid, profile.Fields{Company: strPtr("acme"), Skills: []string{}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Errors) != 2 || verr.Errors[0].Param != "status" || verr.Errors[1].Param != "skills" {
		t.Fatalf("unexpected field errors %+v", verr.Errors)
	}
}

func TestUpsert_PartialUpdateLeavesOtherFields(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, uid, profile.Fields{
		Status: strPtr("dev"),
		Skills: []string{"go"},
		Bio:    strPtr("hello"),
		Social: profile.SocialFields{Twitter: strPtr("t")},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	p, err := svc.Upsert(ctx, uid, profile.Fields{
		Company: strPtr("acme"),
		Social:  profile.SocialFields{YouTube: strPtr("y")},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.Bio != "hello" || p.Company != "acme" || p.Status != "dev" {
		t.Fatalf("unexpected profile %+v", p)
	}
	if p.Social.Twitter != "t" || p.Social.YouTube != "y" {
		t.Fatalf("social links not merged: %+v", p.Social)
	}
}

func TestUpsert_UnknownUser(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upsert(context.Background(), uuid.New(), profile.Fields{Status: strPtr("dev"), Skills: []string{"go"}})
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestExperience_MostRecentFirstAndRemoval(t *testing.T) {
	svc, _, uid := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Upsert(ctx, uid, profile.Fields{Status: strPtr("dev"), Skills: []string{"go"}}); err != nil {
		t.Fatalf("create: %v", err)
	}

	from, _ := profile.ParseDate("2020-01-01")
	if _, err := svc.AddExperience(ctx, uid, profile.Experience{Title: "E1", Company: "c", Location: "l", From: from}); err != nil {
		t.Fatalf("add E1: %v", err)
	}
	if _, err := svc.AddExperience(ctx, uid, profile.Experience{Title: "E2", Company: "c", Location: "l", From: from}); err != nil {
		t.Fatalf("add E2: %v", err)
	}
	p, err := svc.AddExperience(ctx, uid, profile.Experience{Title: "E3", Company: "c", Location: "l", From: from})
	if err != nil {
		t.Fatalf("add E3: %v", err)
	}
	if len(p.Experience) != 3 || p.Experience[0].Title != "E3" || p.Experience[2].Title != "E1" {
		t.Fatalf("unexpected order %+v", p.Experience)
	}
	if p.Experience[0].ID == "" || p.Experience[0].ID == p.Experience[1].ID {
		t.Fatalf("expected distinct generated ids")
	}

	p, err = svc.RemoveExperience(ctx, uid, p.Experience[1].ID)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(p.Experience) != 2 || p.Experience[0].Title != "E3" || p.Experience[1].Title != "E1" {
		t.Fatalf("unexpected order after removal %+v", p.Experience)
	}

	if _, err := svc.RemoveExperience(ctx, uid, "missing"); !errors.Is(err, profile.ErrEntryNotFound) {
		t.Fatalf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestEducation_RequiresProfile(t *testing.T) {
	svc, _, uid := newTestService(t)

	_, err := svc.AddEducation(context.Background(), uid, profile.Education{School: "s", Degree: "d"})
	if !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRemove_CascadesAndIsNoOpWhenAbsent(t *testing.T) {
	svc, store, uid := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upsert(ctx, uid, profile.Fields{Status: strPtr("dev"), Skills: []string{"go"}}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.Posts().Create(ctx, post.Post{ID: uuid.New(), User: uid, Text: "hi"}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	if err := svc.Remove(ctx, uid); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := svc.GetOwn(ctx, uid); !errors.Is(err, profile.ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
	if _, err := store.Users().GetByID(ctx, uid); !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user gone, got %v", err)
	}
	posts, _ := store.Posts().List(ctx)
	if len(posts) != 0 {
		t.Fatalf("expected posts gone, got %d", len(posts))
	}

	if err := svc.Remove(ctx, uuid.New()); err != nil {
		t.Fatalf("expected no-op for unknown user, got %v", err)
	}
}
