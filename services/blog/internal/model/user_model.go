package model

import "time"

// UserModel maps the users table owned by the auth service. The blog only reads it.
type UserModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FirstName string    `gorm:"type:varchar(150)" json:"first_name"`
	LastName  string    `gorm:"type:varchar(150)" json:"last_name"`
	Email     string    `gorm:"type:varchar(254)" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserModel) TableName() string {
	return "users"
}
