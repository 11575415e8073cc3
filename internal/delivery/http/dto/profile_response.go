package dto

import (
	"time"

	"devconnector/internal/domain/profile"

	"github.com/google/uuid"
)

type OwnerResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
}

type ProfileResponse struct {
	ID             uuid.UUID            `json:"id"`
	User           OwnerResponse        `json:"user"`
	Company        string               `json:"company,omitempty"`
	Location       string               `json:"location,omitempty"`
	Website        string               `json:"website,omitempty"`
	Bio            string               `json:"bio,omitempty"`
	Status         string               `json:"status"`
	Skills         []string             `json:"skills"`
	GitHubUsername string               `json:"githubusername,omitempty"`
	Social         profile.Social       `json:"social"`
	Experience     []profile.Experience `json:"experience"`
	Education      []profile.Education  `json:"education"`
	CreatedAt      time.Time            `json:"date"`
}

func NewProfileResponse(p profile.Profile) ProfileResponse {
	out := ProfileResponse{
		ID:             p.ID,
		User:           OwnerResponse{ID: p.User.ID, Name: p.User.Name, Avatar: p.User.Avatar},
		Company:        p.Company,
		Location:       p.Location,
		Website:        p.Website,
		Bio:            p.Bio,
		Status:         p.Status,
		Skills:         p.Skills,
		GitHubUsername: p.GitHubUsername,
		Social:         p.Social,
		Experience:     p.Experience,
		Education:      p.Education,
		CreatedAt:      p.CreatedAt,
	}
	if out.Skills == nil {
		out.Skills = []string{}
	}
	if out.Experience == nil {
		out.Experience = []profile.Experience{}
	}
	if out.Education == nil {
		out.Education = []profile.Education{}
	}
	return out
}

func NewProfileListResponse(ps []profile.Profile) []ProfileResponse {
	out := make([]ProfileResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProfileResponse(p))
	}
	return out
}
