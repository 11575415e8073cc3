package post

import (
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventCreated     EventType = "post_created"
	EventDeleted     EventType = "post_deleted"
	EventLiked       EventType = "post_liked"
	EventUnliked     EventType = "post_unliked"
	EventCommented   EventType = "post_commented"
	EventUncommented EventType = "post_uncommented"
)

// Event describes a change to a post made by UserID.
type Event struct {
	Type   EventType
	PostID uuid.UUID
	UserID uuid.UUID
	At     time.Time
}
