package post

import (
	"context"
	"strings"
	"time"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/user"

	"github.com/google/uuid"
)

// Publisher receives an event after every successful change.
type Publisher interface {
	Publish(evt post.Event)
}

type Service struct {
	posts     post.Repository
	users     user.Repository
	publisher Publisher

	now func() time.Time
}

// NewService builds the post service. publisher may be nil.
func NewService(posts post.Repository, users user.Repository, publisher Publisher) *Service {
	return &Service{posts: posts, users: users, publisher: publisher, now: time.Now}
}

// Create stores a post by userID, copying the author's name and avatar.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, text string) (post.Post, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return post.Post{}, err
	}

	p, err := s.posts.Create(ctx, post.Post{
		ID:        uuid.New(),
		User:      userID,
		Text:      strings.TrimSpace(text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return post.Post{}, err
	}
	s.publish(post.EventCreated, p.ID, userID)
	return p, nil
}

func (s *Service) List(ctx context.Context) ([]post.Post, error) {
	return s.posts.List(ctx)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (post.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// Delete removes the post when userID wrote it.
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p.User != userID {
		return post.ErrForbidden
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(post.EventDeleted, id, userID)
	return nil
}

func (s *Service) Like(ctx context.Context, id, userID uuid.UUID) ([]post.Like, error) {
	p, err := s.react(ctx, id, func(p *post.Post) error { return p.Like(userID) })
	if err != nil {
		return nil, err
	}
	s.publish(post.EventLiked, id, userID)
	return p.Likes, nil
}

func (s *Service) Unlike(ctx context.Context, id, userID uuid.UUID) ([]post.Like, error) {
	p, err := s.react(ctx, id, func(p *post.Post) error { return p.Unlike(userID) })
	if err != nil {
		return nil, err
	}
	s.publish(post.EventUnliked, id, userID)
	return p.Likes, nil
}

// Comment adds a comment by userID, copying the author's name and avatar.
func (s *Service) Comment(ctx context.Context, id, userID uuid.UUID, text string) ([]post.Comment, error) {
	author, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	c := post.Comment{
		ID:        uuid.New(),
		User:      userID,
		Text:      strings.TrimSpace(text),
		Name:      author.Name,
		Avatar:    author.Avatar,
		CreatedAt: s.now().UTC(),
	}
	p, err := s.react(ctx, id, func(p *post.Post) error {
		p.AddComment(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(post.EventCommented, id, userID)
	return p.Comments, nil
}

func (s *Service) Uncomment(ctx context.Context, id, commentID, userID uuid.UUID) ([]post.Comment, error) {
	p, err := s.react(ctx, id, func(p *post.Post) error { return p.RemoveComment(commentID, userID) })
	if err != nil {
		return nil, err
	}
	s.publish(post.EventUncommented, id, userID)
	return p.Comments, nil
}

// react loads the post, applies fn and saves likes and comments back.
// Concurrent reactions on the same post are last-write-wins.
func (s *Service) react(ctx context.Context, id uuid.UUID, fn func(p *post.Post) error) (post.Post, error) {
	p, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return post.Post{}, err
	}
	if err := fn(&p); err != nil {
		return post.Post{}, err
	}
	if err := s.posts.SaveReactions(ctx, p); err != nil {
		return post.Post{}, err
	}
	return p, nil
}

func (s *Service) publish(t post.EventType, postID, userID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(post.Event{Type: t, PostID: postID, UserID: userID, At: s.now().UTC()})
}
