package persistent

import (
	"fmt"

	"blogicum/services/blog/internal/entity"
	"blogicum/services/blog/internal/model"

	"gorm.io/gorm"
)

type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(publishedOnly bool) ([]*entity.Location, error)
	Delete(id string) error
}

type locationRepository struct {
	db *gorm.DB
}

func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &locationRepository{db: db}
}

func (r *locationRepository) Create(location *entity.Location) error {
	locationModel := ToLocationModel(location)
	if err := r.db.Create(locationModel).Error; err != nil {
		return fmt.Errorf("failed to create location: %w", err)
	}
	*location = *ToLocationEntity(locationModel)
	return nil
}

func (r *locationRepository) GetByID(id string) (*entity.Location, error) {
	var locationModel model.LocationModel
	if err := r.db.Where("id = ?", id).Take(&locationModel).Error; err != nil {
		return nil, translateError(err)
	}
	return ToLocationEntity(&locationModel), nil
}

func (r *locationRepository) List(publishedOnly bool) ([]*entity.Location, error) {
	var locationModels []model.LocationModel
	query := r.db.Order("name ASC")
	if publishedOnly {
		query = query.Where("is_published = ?", true)
	}
	if err := query.Find(&locationModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list locations: %w", err)
	}

	locations := make([]*entity.Location, len(locationModels))
	for i := range locationModels {
		locations[i] = ToLocationEntity(&locationModels[i])
	}
	return locations, nil
}

// Delete removes the location and detaches its posts.
func (r *locationRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.PostModel{}).Where("location_id = ?", id).Update("location_id", nil).Error; err != nil {
			return fmt.Errorf("failed to detach posts: %w", err)
		}

		result := tx.Where("id = ?", id).Delete(&model.LocationModel{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete location: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return entity.ErrNotFound
		}
		return nil
	})
}
