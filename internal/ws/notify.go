package ws

import (
	"encoding/json"
	"time"

	"devconnector/internal/domain/post"
)

type PostEvent struct {
	Type      string `json:"type"`
	PostID    string `json:"post_id"`
	UserID    string `json:"user_id"`
	Timestamp string `json:"timestamp"`
}

// Notifier publishes post events to every client of a hub.
type Notifier struct {
	hub *Hub
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub}
}

func (n *Notifier) Publish(evt post.Event) {
	if n == nil || n.hub == nil {
		return
	}

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	b, err := json.Marshal(PostEvent{
		Type:      string(evt.Type),
		PostID:    evt.PostID.String(),
		UserID:    evt.UserID.String(),
		Timestamp: at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.Broadcast(b)
}
