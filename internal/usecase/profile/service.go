package profile

import (
	"context"
	"errors"
	"fmt"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"
	"devconnector/internal/pkg/validation"

	"github.com/google/uuid"
)

const (
	msgStatusRequired = "Status is required"
	msgSkillsRequired = "Skill is required"
)

// ValidationError lists the request fields that failed a check.
type ValidationError struct {
	Errors []validation.FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", e.Errors[0].Msg)
}

type Service struct {
	profiles profile.Repository
	users    user.Repository
	posts    post.Repository

	newID func() string
}

func NewService(profiles profile.Repository, users user.Repository, posts post.Repository) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		posts:    posts,
		newID:    uuid.NewString,
	}
}

func (s *Service) GetOwn(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Upsert creates the profile of userID or merges f into it. Creation needs
// status and skills; without them only an existing profile can be updated.
func (s *Service) Upsert(ctx context.Context, userID uuid.UUID, f profile.Fields) (profile.Profile, error) {
	if f.Skills != nil && len(f.Skills) == 0 {
		f.Skills = nil
	}

	if f.HasRequired() {
		return s.profiles.Upsert(ctx, userID, f)
	}

	p, err := s.profiles.Update(ctx, userID, f)
	if errors.Is(err, profile.ErrNotFound) {
		return profile.Profile{}, &ValidationError{Errors: missingRequired(f)}
	}
	return p, err
}

func missingRequired(f profile.Fields) []validation.FieldError {
	var out []validation.FieldError
	if f.Status == nil {
		out = append(out, validation.Required("status", msgStatusRequired))
	}
	if f.Skills == nil {
		out = append(out, validation.Required("skills", msgSkillsRequired))
	}
	return out
}

func (s *Service) ListAll(ctx context.Context) ([]profile.Profile, error) {
	return s.profiles.List(ctx)
}

func (s *Service) GetByUser(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	return s.profiles.GetByUserID(ctx, userID)
}

// Remove deletes the posts, the profile and the account of userID in that
// order. Each step is a no-op when there is nothing to delete.
func (s *Service) Remove(ctx context.Context, userID uuid.UUID) error {
	if err := s.posts.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete posts: %w", err)
	}
	if err := s.profiles.DeleteByUserID(ctx, userID); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (s *Service) AddExperience(ctx context.Context, userID uuid.UUID, e profile.Experience) (profile.Profile, error) {
	e.ID = s.newID()
	return s.profiles.PrependExperience(ctx, userID, e)
}

func (s *Service) RemoveExperience(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return s.profiles.RemoveExperience(ctx, userID, id)
}

func (s *Service) AddEducation(ctx context.Context, userID uuid.UUID, e profile.Education) (profile.Profile, error) {
	e.ID = s.newID()
	return s.profiles.PrependEducation(ctx, userID, e)
}

func (s *Service) RemoveEducation(ctx context.Context, userID uuid.UUID, id string) (profile.Profile, error) {
	return s.profiles.RemoveEducation(ctx, userID, id)
}
