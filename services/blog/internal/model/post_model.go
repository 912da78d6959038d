package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostModel struct {
	ID          string         `gorm:"type:uuid;primary_key" json:"id"`
	Title       string         `gorm:"type:varchar(256);not null" json:"title"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	PubDate     time.Time      `gorm:"not null;index" json:"pub_date"`
	IsPublished bool           `gorm:"not null;index" json:"is_published"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`
	AuthorID    string         `gorm:"type:uuid;not null;index" json:"author_id"`
	Author      UserModel      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CategoryID  *string        `gorm:"type:uuid;index" json:"category_id"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"-"`
	LocationID  *string        `gorm:"type:uuid;index" json:"location_id"`
	Location    *LocationModel `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL" json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Filled by the aggregate list query; not a column.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

func (PostModel) TableName() string {
	return "posts"
}

func (p *PostModel) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return nil
}

type CommentModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	PostID    string    `gorm:"type:uuid;not null;index" json:"post_id"`
	Post      PostModel `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string    `gorm:"type:uuid;not null;index" json:"author_id"`
	Author    UserModel `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CommentModel) TableName() string {
	return "comments"
}

func (c *CommentModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}

// All lists the models in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{&UserModel{}, &CategoryModel{}, &LocationModel{}, &PostModel{}, &CommentModel{}}
}
