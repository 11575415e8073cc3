package post

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	Create(ctx context.Context, p Post) (Post, error)
	GetByID(ctx context.Context, id uuid.UUID) (Post, error)
	List(ctx context.Context) ([]Post, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	// SaveReactions persists the likes and comments of p.
	SaveReactions(ctx context.Context, p Post) error
}
