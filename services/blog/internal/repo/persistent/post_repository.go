package persistent

import (
	"fmt"
	"time"

	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetByID(id string) (*entity.Post, error)
	List(q entity.PostQuery) ([]*entity.Post, error)
	Count(q entity.PostQuery) (int64, error)
	Update(post *entity.Post) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// LivePosts restricts a posts query to posts visible to the public at now.
// The category gate is a subquery so the scope can be applied more than once.
func LivePosts(db *gorm.DB, now time.Time) func(*gorm.DB) *gorm.DB {
	publishedCategories := db.Session(&gorm.Session{NewDB: true}).
		Model(&model.CategoryModel{}).
		Select("id").
		Where("is_published = ?", true)

	return func(q *gorm.DB) *gorm.DB {
		return q.
			Where("posts.is_published = ?", true).
			Where("posts.pub_date <= ?", now.UTC()).
			Where("(posts.category_id IS NULL OR posts.category_id IN (?))", publishedCategories)
	}
}

// withCommentCount annotates each post with its number of comments in the same query.
func withCommentCount(q *gorm.DB) *gorm.DB {
	return q.
		Select("posts.*, COUNT(comments.id) AS comment_count").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id").
		Group("posts.id")
}

func withRelations(q *gorm.DB) *gorm.DB {
	return q.Preload("Author").Preload("Category").Preload("Location")
}

func (r *postRepository) filtered(q entity.PostQuery) *gorm.DB {
	query := r.db.Model(&model.PostModel{})
	if q.AuthorID != "" {
		query = query.Where("posts.author_id = ?", q.AuthorID)
	}
	if q.CategoryID != "" {
		query = query.Where("posts.category_id = ?", q.CategoryID)
	}
	if q.LiveAt != nil {
		query = query.Scopes(LivePosts(r.db, *q.LiveAt))
	}
	return query
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if err := r.db.Omit(clause.Associations).Create(postModel).Error; err != nil {
		return fmt.Errorf("failed to create post: %w", err)
	}
	post.ID = postModel.ID
	post.CreatedAt = postModel.CreatedAt
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

func (r *postRepository) GetByID(id string) (*entity.Post, error) {
	var postModel model.PostModel
	err := r.db.Model(&model.PostModel{}).
		Scopes(withCommentCount, withRelations).
		Where("posts.id = ?", id).
		Take(&postModel).Error
	if err != nil {
		return nil, translateError(err)
	}
	return ToPostEntity(&postModel), nil
}

func (r *postRepository) List(q entity.PostQuery) ([]*entity.Post, error) {
	var postModels []model.PostModel
	query := r.filtered(q).
		Scopes(withCommentCount, withRelations).
		Order("posts.pub_date DESC").
		Order("posts.id DESC")

	if q.Limit > 0 {
		query = query.Limit(q.Limit).Offset(q.Offset)
	}

	if err := query.Find(&postModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*entity.Post, len(postModels))
	for i := range postModels {
		posts[i] = ToPostEntity(&postModels[i])
	}
	return posts, nil
}

func (r *postRepository) Count(q entity.PostQuery) (int64, error) {
	var count int64
	if err := r.filtered(q).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	postModel.UpdatedAt = time.Now().UTC()
	result := r.db.Model(&model.PostModel{ID: post.ID}).
		Select("title", "text", "pub_date", "is_published", "image_url", "category_id", "location_id", "updated_at").
		Updates(postModel)
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	post.UpdatedAt = postModel.UpdatedAt
	return nil
}

// Delete removes the post and its comments in one transaction.
func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete comments: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&model.PostModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete post: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}
