package entity

import "time"

// PostQuery selects posts for list views. Zero fields do not filter.
// Results are always ordered by publish date descending, then id descending.
type PostQuery struct {
	AuthorID   string
	CategoryID string

	// LiveAt restricts results to posts live at that instant.
	LiveAt *time.Time

	Limit  int
	Offset int
}
