package models

// GoogleAuth links a Google identity to exactly one local user
type GoogleAuth struct {
	ID         string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	GgUserID   string `json:"ggUserId" gorm:"column:gg_user_id;type:varchar(128);not null"`
	Email      string `json:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Occupation string `json:"occupation" gorm:"type:varchar(128)"`
	UserID     string `json:"userId" gorm:"column:user_id;type:uuid;not null"`

	User User `json:"user" gorm:"constraint:OnDelete:CASCADE"`
}

func (GoogleAuth) TableName() string {
	return "google_auths"
}

// GoogleProfileUpdate is the request body for PUT /users/me/google
type GoogleProfileUpdate struct {
	Name       string `json:"name" binding:"required"`
	Occupation string `json:"occupation" binding:"required"`
}
