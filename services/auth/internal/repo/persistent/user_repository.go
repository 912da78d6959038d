package persistent

import (
	"errors"
	"fmt"
	"time"

	"blogicum/services/auth/internal/entity"
	"blogicum/services/auth/internal/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if err := r.db.Create(userModel).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	return r.getBy("id = ?", id)
}

func (r *userRepository) GetByUsername(username string) (*entity.User, error) {
	return r.getBy("username = ?", username)
}

func (r *userRepository) getBy(query string, arg interface{}) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where(query, arg).Take(&userModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

// Update saves the profile fields. The password hash is not touched.
func (r *userRepository) Update(user *entity.User) error {
	user.UpdatedAt = time.Now().UTC()
	userModel := ToUserModel(user)
	result := r.db.Model(&model.UserModel{ID: user.ID}).
		Select("username", "email", "first_name", "last_name", "updated_at").
		Updates(userModel)
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}
