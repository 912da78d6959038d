package model

// UserModel is the read-only slice of the users table needed to name actors.
type UserModel struct {
	ID       string `gorm:"column:id;type:uuid;primaryKey"`
	Username string `gorm:"column:username;type:varchar(150);not null"`
}

func (UserModel) TableName() string {
	return "users"
}
