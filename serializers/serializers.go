// Package serializers holds the response payload shapes. They are written by
// hand and kept separate from the storage models so the API contract does not
// drift with the schema.
package serializers

import (
	"time"

	"blog-backend/models"
	"blog-backend/utils"

	"gorm.io/gorm"
)

type UserJSON struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type LikeJSON struct {
	PostID string   `json:"post_id"`
	User   UserJSON `json:"user"`
}

type LikeSummaryJSON struct {
	LatestLikes []LikeJSON `json:"latest_likes"`
	Total       int64      `json:"total"`
}

type PostJSON struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
	Author    UserJSON        `json:"author"`
	Likes     LikeSummaryJSON `json:"likes"`
}

type FacebookProfileJSON struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Phone string     `json:"phone"`
	Posts []PostJSON `json:"posts"`
}

type GoogleProfileJSON struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Occupation string     `json:"occupation"`
	Posts      []PostJSON `json:"posts"`
}

type TokenPairJSON struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type AccessTokenJSON struct {
	AccessToken string `json:"access_token"`
}

func User(u models.User) UserJSON {
	return UserJSON{ID: u.ID, Name: u.Name}
}

func Like(l models.Like) LikeJSON {
	return LikeJSON{PostID: l.PostID, User: User(l.User)}
}

func Likes(likes []models.Like) []LikeJSON {
	out := make([]LikeJSON, 0, len(likes))
	for _, l := range likes {
		out = append(out, Like(l))
	}
	return out
}

// LikeSummary aggregates a post's likes: the most recent likers plus the
// total count
func LikeSummary(database *gorm.DB, postID string, limit int) (LikeSummaryJSON, error) {
	var likes []models.Like
	err := database.Preload("User").
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Limit(limit).
		Find(&likes).Error
	if err != nil {
		return LikeSummaryJSON{}, err
	}

	var total int64
	err = database.Model(&models.Like{}).Where("post_id = ?", postID).Count(&total).Error
	if err != nil {
		return LikeSummaryJSON{}, err
	}

	return LikeSummaryJSON{LatestLikes: Likes(likes), Total: total}, nil
}

// Post serializes a post with its full body. The author must be preloaded.
func Post(database *gorm.DB, post models.Post, likesLimit int) (PostJSON, error) {
	likes, err := LikeSummary(database, post.ID, likesLimit)
	if err != nil {
		return PostJSON{}, err
	}

	return PostJSON{
		ID:        post.ID,
		Title:     post.Title,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		Author:    User(post.Author),
		Likes:     likes,
	}, nil
}

// PostOverview serializes a post for list views, with the body truncated
func PostOverview(database *gorm.DB, post models.Post, likesLimit, overviewLength int) (PostJSON, error) {
	out, err := Post(database, post, likesLimit)
	if err != nil {
		return PostJSON{}, err
	}
	out.Body = utils.TruncateString(out.Body, overviewLength)
	return out, nil
}

// PostOverviewList serializes a page of posts for list views
func PostOverviewList(database *gorm.DB, posts []models.Post, likesLimit, overviewLength int) ([]PostJSON, error) {
	out := make([]PostJSON, 0, len(posts))
	for _, post := range posts {
		item, err := PostOverview(database, post, likesLimit, overviewLength)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}
