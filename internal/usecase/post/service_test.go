package post

import (
	"context"
	"errors"
	"testing"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/user"
	"devconnector/internal/infrastructure/persistence/memory"

	"github.com/google/uuid"
)

type recordingPublisher struct {
	events []post.Event
}

func (r *recordingPublisher) Publish(evt post.Event) {
	r.events = append(r.events, evt)
}

func newTestService(t *testing.T) (*Service, *recordingPublisher, uuid.UUID, uuid.UUID) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	alice, bob := uuid.New(), uuid.New()
	if err := store.Users().Create(ctx, user.User{ID: alice, Name: "Alice", Email: "alice@example.com", Avatar: "//a"}); err != nil {
		t.Fatalf("create alice: %v", err)
	}
	if err := store.Users().Create(ctx, user.User{ID: bob, Name: "Bob", Email: "bob@example.com", Avatar: "//b"}); err != nil {
		t.Fatalf("create bob: %v", err)
	}
	pub := &recordingPublisher{}
	return NewService(store.Posts(), store.Users(), pub), pub, alice, bob
}

func TestCreate_CopiesAuthorAndPublishes(t *testing.T) {
	svc, pub, alice, _ := newTestService(t)

	p, err := svc.Create(context.Background(), alice, "  hello  ")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Text != "hello" || p.Name != "Alice" || p.Avatar != "//a" {
		t.Fatalf("unexpected post %+v", p)
	}
	if len(pub.events) != 1 || pub.events[0].Type != post.EventCreated || pub.events[0].PostID != p.ID {
		t.Fatalf("unexpected events %+v", pub.events)
	}
}

func TestDelete_OnlyOwner(t *testing.T) {
	svc, _, alice, bob := newTestService(t)
	ctx := context.Background()
	p, _ := svc.Create(ctx, alice, "hello")

	if err := svc.Delete(ctx, p.ID, bob); !errors.Is(err, post.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(ctx, p.ID, alice); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, p.ID); !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLikeUnlike(t *testing.T) {
	svc, _, alice, bob := newTestService(t)
	ctx := context.Background()
	p, _ := svc.Create(ctx, alice, "hello")

	if _, err := svc.Like(ctx, p.ID, alice); err != nil {
		t.Fatalf("like: %v", err)
	}
	likes, err := svc.Like(ctx, p.ID, bob)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(likes) != 2 || likes[0].User != bob {
		t.Fatalf("expected most recent like first, got %+v", likes)
	}
	if _, err := svc.Like(ctx, p.ID, bob); !errors.Is(err, post.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	likes, err = svc.Unlike(ctx, p.ID, alice)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if len(likes) != 1 || likes[0].User != bob {
		t.Fatalf("unexpected likes %+v", likes)
	}
	if _, err := svc.Unlike(ctx, p.ID, alice); !errors.Is(err, post.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
}

func TestCommentUncomment(t *testing.T) {
	svc, pub, alice, bob := newTestService(t)
	ctx := context.Background()
	p, _ := svc.Create(ctx, alice, "hello")

	comments, err := svc.Comment(ctx, p.ID, bob, "nice")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if len(comments) != 1 || comments[0].Name != "Bob" || comments[0].Text != "nice" {
		t.Fatalf("unexpected comments %+v", comments)
	}
	cid := comments[0].ID

	if _, err := svc.Uncomment(ctx, p.ID, cid, alice); !errors.Is(err, post.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Uncomment(ctx, p.ID, uuid.New(), bob); !errors.Is(err, post.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	comments, err = svc.Uncomment(ctx, p.ID, cid, bob)
	if err != nil || len(comments) != 0 {
		t.Fatalf("expected comment removed, got %+v err=%v", comments, err)
	}

	last := pub.events[len(pub.events)-1]
	if last.Type != post.EventUncommented || last.UserID != bob {
		t.Fatalf("unexpected last event %+v", last)
	}
}

func TestReactions_UnknownPost(t *testing.T) {
	svc, _, alice, _ := newTestService(t)

	if _, err := svc.Like(context.Background(), uuid.New(), alice); !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
