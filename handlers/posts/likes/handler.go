package likes

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

// @Summary Get the list of a post's likes
// @Tags likes
// @Produce json
// @Param id path string true "Post ID"
// @Param page query int false "Page number"
// @Security BearerAuth
// @Success 200 {array} serializers.LikeJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "Post not found"
// @Router /posts/{id}/likes [get]
func (h *Handler) GetPostLikes(c *gin.Context) {
	if !h.postExists(c, c.Param("id")) {
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	var likes []models.Like
	err = h.DB.Preload("User").
		Where("post_id = ?", c.Param("id")).
		Limit(h.Cfg.LikesPerPage).
		Offset((page - 1) * h.Cfg.LikesPerPage).
		Find(&likes).Error
	if err != nil {
		utils.LogError(err, "Error retrieving the likes")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, serializers.Likes(likes))
}

// @Summary Like a post
// @Tags likes
// @Produce json
// @Param post_id path string true "Post ID"
// @Security BearerAuth
// @Success 201 {object} serializers.LikeJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 403 {object} utils.ErrorBody "Already liked"
// @Failure 404 {object} utils.ErrorBody "Post not found"
// @Router /users/me/likes/{post_id} [put]
func (h *Handler) LikePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	postID := c.Param("post_id")
	if !h.postExists(c, postID) {
		return
	}

	var existing models.Like
	err := h.DB.First(&existing, "post_id = ? AND user_id = ?", postID, user.ID).Error
	if err == nil {
		utils.SendError(c, http.StatusForbidden, "You cannot like a post twice")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.LogError(err, "Error checking the like existence")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	like := models.Like{
		PostID: postID,
		UserID: user.ID,
	}
	if err := h.DB.Create(&like).Error; err != nil {
		utils.LogError(err, "Error creating the like")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	like.User = user

	c.JSON(http.StatusCreated, serializers.Like(like))
}

// @Summary Unlike a post
// @Description Remove the like and answer its pre-delete state
// @Tags likes
// @Produce json
// @Param post_id path string true "Post ID"
// @Security BearerAuth
// @Success 200 {object} serializers.LikeJSON "Pre-delete snapshot"
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "Not liked yet"
// @Router /users/me/likes/{post_id} [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	postID := c.Param("post_id")

	var like models.Like
	err := h.DB.First(&like, "post_id = ? AND user_id = ?", postID, user.ID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "You haven't like this post yet")
		} else {
			utils.LogError(err, "Error retrieving the like")
			utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		}
		return
	}
	like.User = user

	if err := h.DB.Delete(&models.Like{}, "post_id = ? AND user_id = ?", postID, user.ID).Error; err != nil {
		utils.LogError(err, "Error deleting the like")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, serializers.Like(like))
}

func (h *Handler) postExists(c *gin.Context, postID string) bool {
	var post models.Post
	if err := h.DB.First(&post, "id = ?", postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, fmt.Sprintf("Post with id %s not found", postID))
		} else {
			utils.LogError(err, "Error retrieving the post")
			utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		}
		return false
	}
	return true
}
