package entity

import "time"

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Text        string    `json:"text"`
	PubDate     time.Time `json:"pub_date"`
	IsPublished bool      `json:"is_published"`
	ImageURL    string    `json:"image_url,omitempty"`
	AuthorID    string    `json:"author_id"`
	Author      *User     `json:"author,omitempty"`
	CategoryID  *string   `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	LocationID  *string   `json:"location_id"`
	Location    *Location `json:"location,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// CommentCount is filled by list and detail queries only.
	CommentCount int64 `json:"comment_count"`
}

type Comment struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	PostID    string    `json:"post_id"`
	AuthorID  string    `json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
