package models

import (
	"time"
)

// Like records one user's endorsement of one post. The composite key keeps
// a (post, user) pair from ever appearing twice.
type Like struct {
	PostID    string    `json:"postId" gorm:"column:post_id;primaryKey;type:uuid"`
	UserID    string    `json:"userId" gorm:"column:user_id;primaryKey;type:uuid"`
	CreatedAt time.Time `json:"createdAt"`

	User User `json:"user" gorm:"constraint:OnDelete:CASCADE"`
}

func (Like) TableName() string {
	return "likes"
}
