package seeder

import (
	"context"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"
)

// Stores are the repositories a seeder writes through, so seeding works
// the same for every storage driver.
type Stores struct {
	Users    user.Repository
	Profiles profile.Repository
	Posts    post.Repository
}

type Seeder interface {
	Name() string
	Run(ctx context.Context, s Stores) error
}
