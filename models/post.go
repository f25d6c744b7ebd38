package models

import (
	"time"
)

type Post struct {
	ID        string    `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	Title     string    `json:"title" gorm:"type:varchar(50);index;not null"`
	Body      string    `json:"body" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"createdAt"`
	AuthorID  string    `json:"authorId" gorm:"column:author_id;type:uuid;not null"`

	Author User   `json:"author" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Likes  []Like `json:"likes" gorm:"constraint:OnDelete:CASCADE"`
}

// PostRequest is the request body for creating and replacing a post
type PostRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

func (Post) TableName() string {
	return "posts"
}
