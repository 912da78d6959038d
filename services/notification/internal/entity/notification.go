package entity

import (
	"errors"
	"time"
)

var ErrUnknownType = errors.New("unknown notification type")

const TypeNewComment = "new_comment"

// Notification is a message stored for a user, newest first.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	PostID    string    `json:"post_id"`
	CommentID string    `json:"comment_id,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
