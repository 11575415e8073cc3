package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("profile not found")
	ErrEntryNotFound = errors.New("profile entry not found")
)

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (Profile, error)
	List(ctx context.Context) ([]Profile, error)

	// Upsert atomically creates the profile or merges f into the existing
	// one. f must carry the required fields.
	Upsert(ctx context.Context, userID uuid.UUID, f Fields) (Profile, error)
	// Update merges f into an existing profile or returns ErrNotFound.
	Update(ctx context.Context, userID uuid.UUID, f Fields) (Profile, error)
	// DeleteByUserID is a no-op when the user has no profile.
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error

	PrependExperience(ctx context.Context, userID uuid.UUID, e Experience) (Profile, error)
	RemoveExperience(ctx context.Context, userID uuid.UUID, id string) (Profile, error)
	PrependEducation(ctx context.Context, userID uuid.UUID, e Education) (Profile, error)
	RemoveEducation(ctx context.Context, userID uuid.UUID, id string) (Profile, error)
}
