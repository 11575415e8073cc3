package seeder

import (
	"context"
	"time"

	"devconnector/internal/domain/post"
	"devconnector/internal/domain/profile"
	"devconnector/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	DemoEmail    = "demo@devconnector.local"
	DemoPassword = "demo1234"
)

// DemoSeeder creates one account with a profile and a post. It does
// nothing when the demo account already exists.
type DemoSeeder struct{}

func (DemoSeeder) Name() string { return "demo" }

func (DemoSeeder) Run(ctx context.Context, s Stores) error {
	exists, err := s.Users.ExistsByEmail(ctx, DemoEmail)
	if err != nil || exists {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u := user.User{
		ID:           uuid.New(),
		Name:         "Demo Developer",
		Email:        DemoEmail,
		PasswordHash: string(hash),
		Avatar:       "//www.gravatar.com/avatar/?s=200&r=pg&d=mm",
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return err
	}

	status, company, github := "Developer", "DevConnector", "octocat"
	twitter := "https://twitter.com/devconnector"
	if _, err := s.Profiles.Upsert(ctx, u.ID, profile.Fields{
		Status:         &status,
		Company:        &company,
		GitHubUsername: &github,
		Skills:         profile.ParseSkills("Go, PostgreSQL, Redis"),
		Social:         profile.SocialFields{Twitter: &twitter},
	}); err != nil {
		return err
	}

	from := profile.Date{Time: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := s.Profiles.PrependExperience(ctx, u.ID, profile.Experience{
		ID:       uuid.NewString(),
		Title:    "Backend Engineer",
		Company:  company,
		Location: "Remote",
		From:     from,
		Current:  true,
	}); err != nil {
		return err
	}

	_, err = s.Posts.Create(ctx, post.Post{
		ID:     uuid.New(),
		User:   u.ID,
		Text:   "Hello from the demo account",
		Name:   u.Name,
		Avatar: u.Avatar,
	})
	return err
}
