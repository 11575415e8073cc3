package post

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound        = errors.New("post not found")
	ErrAlreadyLiked    = errors.New("post already liked")
	ErrNotLiked        = errors.New("post has not yet been liked")
	ErrCommentNotFound = errors.New("comment does not exist")
	ErrForbidden       = errors.New("user not authorized")
)

type Like struct {
	User uuid.UUID `json:"user"`
}

type Comment struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Text      string    `json:"text"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar"`
	CreatedAt time.Time `json:"date"`
}

type Post struct {
	ID        uuid.UUID
	User      uuid.UUID
	Text      string
	Name      string
	Avatar    string
	Likes     []Like
	Comments  []Comment
	CreatedAt time.Time
}

func (p *Post) LikedBy(userID uuid.UUID) bool {
	for _, l := range p.Likes {
		if l.User == userID {
			return true
		}
	}
	return false
}

func (p *Post) Like(userID uuid.UUID) error {
	if p.LikedBy(userID) {
		return ErrAlreadyLiked
	}
	p.Likes = append([]Like{{User: userID}}, p.Likes...)
	return nil
}

func (p *Post) Unlike(userID uuid.UUID) error {
	for i, l := range p.Likes {
		if l.User == userID {
			p.Likes = append(p.Likes[:i:i], p.Likes[i+1:]...)
			return nil
		}
	}
	return ErrNotLiked
}

func (p *Post) AddComment(c Comment) {
	p.Comments = append([]Comment{c}, p.Comments...)
}

// RemoveComment deletes the comment only when userID wrote it.
func (p *Post) RemoveComment(commentID, userID uuid.UUID) error {
	for i, c := range p.Comments {
		if c.ID != commentID {
			continue
		}
		if c.User != userID {
			return ErrForbidden
		}
		p.Comments = append(p.Comments[:i:i], p.Comments[i+1:]...)
		return nil
	}
	return ErrCommentNotFound
}
