// Package policy holds the read and write rules of the blog: which posts the
// public may see and who may change a post or comment.
package policy

import (
	"time"

	"blogicum/services/blog/internal/entity"
)

// IsLive reports whether post is visible to the general public at now.
// The category, when referenced, must be loaded on post.
func IsLive(post *entity.Post, now time.Time) bool {
	if post == nil || !post.IsPublished || post.PubDate.After(now) {
		return false
	}
	if post.CategoryID == nil {
		return true
	}
	return post.Category != nil && post.Category.IsPublished
}

// FilterLive returns the live subset of posts in their original order.
func FilterLive(posts []*entity.Post, now time.Time) []*entity.Post {
	live := make([]*entity.Post, 0, len(posts))
	for _, p := range posts {
		if IsLive(p, now) {
			live = append(live, p)
		}
	}
	return live
}

// CanView reports whether principal may open post's detail page.
func CanView(principal entity.Principal, post *entity.Post, now time.Time) bool {
	if post == nil {
		return false
	}
	return CanEdit(principal, post.AuthorID) || IsLive(post, now)
}
