package models

import (
	"blog-backend/utils"

	"gorm.io/gorm"
)

// User is the local account a provider identity is linked to
type User struct {
	ID   string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Name string `json:"name" gorm:"type:varchar(25);not null"`
}

func (User) TableName() string {
	return "users"
}

// Some providers send back no display name
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Name == "" {
		u.Name = utils.RandomString(6)
	}
	return nil
}
