package models

// FacebookAuth links a Facebook identity to exactly one local user
type FacebookAuth struct {
	ID       string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	FbUserID string `json:"fbUserId" gorm:"column:fb_user_id;type:varchar(128);not null"`
	Email    string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Phone    string `json:"phone" gorm:"type:varchar(32)"`
	UserID   string `json:"userId" gorm:"column:user_id;type:uuid;not null"`

	User User `json:"user" gorm:"constraint:OnDelete:CASCADE"`
}

func (FacebookAuth) TableName() string {
	return "facebook_auths"
}

// FacebookProfileUpdate is the request body for PUT /users/me/facebook
type FacebookProfileUpdate struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}
