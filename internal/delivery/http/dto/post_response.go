package dto

import (
	"time"

	"devconnector/internal/domain/post"

	"github.com/google/uuid"
)

type PostResponse struct {
	ID        uuid.UUID      `json:"id"`
	User      uuid.UUID      `json:"user"`
	Text      string         `json:"text"`
	Name      string         `json:"name"`
	Avatar    string         `json:"avatar"`
	Likes     []post.Like    `json:"likes"`
	Comments  []post.Comment `json:"comments"`
	CreatedAt time.Time      `json:"date"`
}

func NewPostResponse(p post.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		User:      p.User,
		Text:      p.Text,
		Name:      p.Name,
		Avatar:    p.Avatar,
		Likes:     Likes(p.Likes),
		Comments:  Comments(p.Comments),
		CreatedAt: p.CreatedAt,
	}
}

func NewPostListResponse(ps []post.Post) []PostResponse {
	out := make([]PostResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewPostResponse(p))
	}
	return out
}

// Likes and Comments never serialize as null.
func Likes(ls []post.Like) []post.Like {
	if ls == nil {
		return []post.Like{}
	}
	return ls
}

func Comments(cs []post.Comment) []post.Comment {
	if cs == nil {
		return []post.Comment{}
	}
	return cs
}
