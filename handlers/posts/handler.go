package posts

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"blog-backend/config"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/serializers"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

func NewHandler(database *gorm.DB, cfg *config.Config) *Handler {
	return &Handler{DB: database, Cfg: cfg}
}

// @Summary Get the list of posts
// @Description Newest-first page of posts with truncated bodies and like summaries
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Security BearerAuth
// @Success 200 {array} serializers.PostJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Router /posts [get]
func (h *Handler) GetPosts(c *gin.Context) {
	page := pageNumber(c)

	var posts []models.Post
	err := h.DB.Preload("Author").
		Order("created_at DESC").
		Limit(h.Cfg.PostsPerPage).
		Offset((page - 1) * h.Cfg.PostsPerPage).
		Find(&posts).Error
	if err != nil {
		utils.LogError(err, "Error retrieving the posts")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	out, err := serializers.PostOverviewList(h.DB, posts, h.Cfg.LatestLikesLimit, h.Cfg.BodyOverviewLength)
	if err != nil {
		utils.LogError(err, "Error serializing the posts")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, out)
}

// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Param body body models.PostRequest true "Title and body"
// @Security BearerAuth
// @Success 201 {object} serializers.PostJSON
// @Failure 400 {object} utils.ErrorBody "Invalid input"
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Router /posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	var req models.PostRequest
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	post := models.Post{
		Title:    req.Title,
		Body:     req.Body,
		AuthorID: user.ID,
	}
	if err := h.DB.Create(&post).Error; err != nil {
		utils.LogError(err, "Error creating the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	post.Author = user

	out, err := serializers.Post(h.DB, post, h.Cfg.LatestLikesLimit)
	if err != nil {
		utils.LogError(err, "Error serializing the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusCreated, out)
}

// @Summary Get a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} serializers.PostJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "Post not found"
// @Router /posts/{id} [get]
func (h *Handler) GetPostByID(c *gin.Context) {
	post, ok := h.findPost(c)
	if !ok {
		return
	}

	out, err := serializers.Post(h.DB, post, h.Cfg.LatestLikesLimit)
	if err != nil {
		utils.LogError(err, "Error serializing the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, out)
}

// @Summary Update a post
// @Description Replace the title and body. Author only.
// @Tags posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param body body models.PostRequest true "New title and body"
// @Security BearerAuth
// @Success 200 {object} serializers.PostJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 403 {object} utils.ErrorBody "Not the author"
// @Failure 404 {object} utils.ErrorBody "Post not found"
// @Router /posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	post, ok := h.findPost(c)
	if !ok {
		return
	}

	if post.AuthorID != user.ID {
		utils.SendError(c, http.StatusForbidden, "You are not the author of this post")
		return
	}

	var req models.PostRequest
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	updates := map[string]interface{}{"title": req.Title, "body": req.Body}
	if err := h.DB.Model(&models.Post{}).Where("id = ?", post.ID).Updates(updates).Error; err != nil {
		utils.LogError(err, "Error updating the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	post.Title = req.Title
	post.Body = req.Body

	out, err := serializers.Post(h.DB, post, h.Cfg.LatestLikesLimit)
	if err != nil {
		utils.LogError(err, "Error serializing the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, out)
}

// @Summary Delete a post
// @Description Remove the post and its likes. Author only. Answers the pre-delete state.
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} serializers.PostJSON "Pre-delete snapshot"
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 403 {object} utils.ErrorBody "Not the author"
// @Failure 404 {object} utils.ErrorBody "Post not found"
// @Router /posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	post, ok := h.findPost(c)
	if !ok {
		return
	}

	if post.AuthorID != user.ID {
		utils.SendError(c, http.StatusForbidden, "You are not the author of this post")
		return
	}

	snapshot, err := serializers.Post(h.DB, post, h.Cfg.LatestLikesLimit)
	if err != nil {
		utils.LogError(err, "Error serializing the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, "id = ?", post.ID).Error
	})
	if err != nil {
		utils.LogError(err, "Error deleting the post")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) findPost(c *gin.Context) (models.Post, bool) {
	postID := c.Param("id")

	var post models.Post
	if err := h.DB.Preload("Author").First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, fmt.Sprintf("Post with id %s not found", postID))
		} else {
			utils.LogError(err, "Error retrieving the post")
			utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		}
		return models.Post{}, false
	}
	return post, true
}

func pageNumber(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
