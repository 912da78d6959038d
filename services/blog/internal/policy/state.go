package policy

import (
	"time"

	"blogicum/services/blog/internal/entity"
)

type State string

const (
	StateDraft     State = "draft"
	StateScheduled State = "scheduled"
	StateLive      State = "live"
	StateHidden    State = "hidden"
)

// StateOf derives the publish state of post at now. It is never stored.
func StateOf(post *entity.Post, now time.Time) State {
	switch {
	case !post.IsPublished:
		return StateDraft
	case post.PubDate.After(now):
		return StateScheduled
	case IsLive(post, now):
		return StateLive
	default:
		return StateHidden
	}
}
