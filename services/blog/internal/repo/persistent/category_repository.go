package persistent

import (
	"fmt"

	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	List(publishedOnly bool) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *entity.Category) error {
	categoryModel := ToCategoryModel(category)
	if err := r.db.Create(categoryModel).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	*category = *ToCategoryEntity(categoryModel)
	return nil
}

func (r *categoryRepository) GetByID(id string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	if err := r.db.Where("id = ?", id).Take(&categoryModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) GetBySlug(slug string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	if err := r.db.Where("slug = ?", slug).Take(&categoryModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToCategoryEntity(&categoryModel), nil
}

func (r *categoryRepository) List(publishedOnly bool) ([]*entity.Category, error) {
	var categoryModels []model.CategoryModel
	query := r.db.Order("title ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Find(&categoryModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, nil
}

// Update changes title, description and the published flag. The slug is immutable.
func (r *categoryRepository) Update(category *entity.Category) error {
	result := r.db.Model(&model.CategoryModel{ID: category.ID}).
		Select("title", "description", "is_published").
		Updates(ToCategoryModel(category))
	if result.Error != nil {
		return fmt.Errorf("failed to update category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Delete removes the category and detaches its posts.
func (r *categoryRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PostModel{}).Where("category_id = ?", id).Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach posts: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&model.CategoryModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete category: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}
