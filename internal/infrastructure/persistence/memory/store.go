// Package memory is a process-local store for DB_DRIVER=memory and tests.
// Every read returns a copy, so callers never share slices with the store.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"

	"github.com/google/uuid"
)

type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]user.User
	profiles map[uuid.UUID]profile.Profile
	posts    map[uuid.UUID]post.Post

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:    map[uuid.UUID]user.User{},
		profiles: map[uuid.UUID]profile.Profile{},
		posts:    map[uuid.UUID]post.Post{},
		now:      time.Now,
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, u user.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = r.s.now().UTC()
	}
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, user.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.users, id)
	return nil
}

type ProfileRepository struct{ s *Store }

func (r *ProfileRepository) GetByUserID(_ context.Context, userID uuid.UUID) (profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	return r.s.withOwner(p), nil
}

func (r *ProfileRepository) List(_ context.Context) ([]profile.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]profile.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, r.s.withOwner(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProfileRepository) Upsert(_ context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[userID]; !ok {
		return profile.Profile{}, user.ErrNotFound
	}

	p, ok := r.s.profiles[userID]
	if !ok {
		p = profile.Profile{ID: uuid.New(), CreatedAt: r.s.now().UTC()}
		p.User.ID = userID
	}
	p.Apply(f)
	r.s.profiles[userID] = p
	return r.s.withOwner(p), nil
}

func (r *ProfileRepository) Update(_ context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error) {
	return r.mutate(userID, func(p *profile.Profile) error {
		p.Apply(f)
		return nil
	})
}

func (r *ProfileRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	delete(r.s.profiles, userID)
	return nil
}

func (r *ProfileRepository) PrependExperience(_ context.Context, userID uuid.UUID, e profile.Experience) (profile.Profile, error) {
	return r.mutate(userID, func(p *profile.Profile) error {
		p.AddExperience(e)
		return nil
	})
}

func (r *ProfileRepository) RemoveExperience(_ context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return r.mutate(userID, func(p *profile.Profile) error {
		if !p.RemoveExperience(id) {
			return profile.ErrEntryNotFound
		}
		return nil
	})
}

func (r *ProfileRepository) PrependEducation(_ context.Context, userID uuid.UUID, e profile.Education) (profile.Profile, error) {
	return r.mutate(userID, func(p *profile.Profile) error {
		p.AddEducation(e)
		return nil
	})
}

func (r *ProfileRepository) RemoveEducation(_ context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return r.mutate(userID, func(p *profile.Profile) error {
		if !p.RemoveEducation(id) {
			return profile.ErrEntryNotFound
		}
		return nil
	})
}

func (r *ProfileRepository) mutate(userID uuid.UUID, fn func(p *profile.Profile) error) (profile.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[userID]
	if !ok {
		return profile.Profile{}, profile.ErrNotFound
	}
	p = cloneProfile(p)
	if err := fn(&p); err != nil {
		return profile.Profile{}, err
	}
	r.s.profiles[userID] = p
	return r.s.withOwner(p), nil
}

// withOwner must be called with s.mu held.
func (s *Store) withOwner(p profile.Profile) profile.Profile {
	p = cloneProfile(p)
	if u, ok := s.users[p.User.ID]; ok {
		p.User.Name = u.Name
		p.User.Avatar = u.Avatar
	}
	return p
}

func cloneProfile(p profile.Profile) profile.Profile {
	p.Skills = append([]string(nil), p.Skills...)
	p.Experience = append([]profile.Experience(nil), p.Experience...)
	p.Education = append([]profile.Education(nil), p.Education...)
	return p
}

type PostRepository struct{ s *Store }

func (r *PostRepository) Create(_ context.Context, p post.Post) (post.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[p.User]; !ok {
		return post.Post{}, user.ErrNotFound
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = r.s.now().UTC()
	}
	p = clonePost(p)
	r.s.posts[p.ID] = p
	return clonePost(p), nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (post.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return clonePost(p), nil
}

func (r *PostRepository) List(_ context.Context) ([]post.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]post.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, clonePost(p))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *PostRepository) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.posts {
		if p.User == userID {
			delete(r.s.posts, id)
		}
	}
	return nil
}

func (r *PostRepository) SaveReactions(_ context.Context, p post.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[p.ID]
	if !ok {
		return post.ErrNotFound
	}
	stored.Likes = append([]post.Like(nil), p.Likes...)
	stored.Comments = append([]post.Comment(nil), p.Comments...)
	r.s.posts[p.ID] = stored
	return nil
}

func clonePost(p post.Post) post.Post {
	p.Likes = append([]post.Like(nil), p.Likes...)
	p.Comments = append([]post.Comment(nil), p.Comments...)
	return p
}

var (
	_ user.Repository    = (*UserRepository)(nil)
	_ profile.Repository = (*ProfileRepository)(nil)
	_ post.Repository    = (*PostRepository)(nil)
)
