package users

import (
	"errors"
	"fmt"
	"net/http"

	"blog-backend/config"
	"blog-backend/middleware"
	"blog-backend/models"
	"blog-backend/serializers"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Handler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Tokens   *utils.TokenManager
	Facebook services.FacebookService
	Google   services.GoogleService
}

func NewHandler(database *gorm.DB, cfg *config.Config, tokens *utils.TokenManager, facebook services.FacebookService, google services.GoogleService) *Handler {
	return &Handler{
		DB:       database,
		Cfg:      cfg,
		Tokens:   tokens,
		Facebook: facebook,
		Google:   google,
	}
}

// @Summary Register a Facebook user
// @Description Create a local account linked to a verified Facebook identity
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Facebook access token and user id"
// @Success 201 {object} serializers.TokenPairJSON
// @Failure 400 {object} utils.ErrorBody "Account existed"
// @Failure 401 {object} utils.ErrorBody "Invalid Access Token"
// @Router /users/registrations/facebook [post]
func (h *Handler) RegisterFacebook(c *gin.Context) {
	var req models.RegisterRequest
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	identity, err := h.Facebook.GetUser(c.Request.Context(), req.AccessToken)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			utils.SendError(c, http.StatusUnauthorized, authErr.Message)
			return
		}
		utils.LogError(err, "Error verifying the Facebook access token")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	// The token must belong to the account the client claims to register
	if identity.ID != req.UserID {
		utils.SendError(c, http.StatusBadRequest, "Invalid Access Token")
		return
	}

	exists, err := h.authRecordExists(&models.GoogleAuth{}, identity.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	if exists {
		utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Account with %s has been registered from Google", identity.Email))
		return
	}

	exists, err = h.authRecordExists(&models.FacebookAuth{}, identity.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	if exists {
		utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Account with %s is existed", identity.Email))
		return
	}

	user := models.User{Name: identity.Name}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		fbAuth := models.FacebookAuth{
			FbUserID: identity.ID,
			Email:    identity.Email,
			UserID:   user.ID,
		}
		return tx.Create(&fbAuth).Error
	})
	if err != nil {
		utils.LogError(err, "Error creating the Facebook-linked account")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	h.respondTokens(c, http.StatusCreated, user.ID)
}

// @Summary Register a Google user
// @Description Create a local account linked to a verified Google identity
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.RegisterRequest true "Google ID token and user id"
// @Success 201 {object} serializers.TokenPairJSON
// @Failure 400 {object} utils.ErrorBody "Account existed"
// @Failure 401 {object} utils.ErrorBody "Invalid Access Token"
// @Router /users/registrations/google [post]
func (h *Handler) RegisterGoogle(c *gin.Context) {
	var req models.RegisterRequest
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	identity, err := h.Google.GetUser(c.Request.Context(), req.AccessToken)
	if err != nil {
		var authErr *services.AuthError
		if errors.As(err, &authErr) {
			utils.SendError(c, http.StatusUnauthorized, authErr.Message)
			return
		}
		utils.LogError(err, "Error verifying the Google ID token")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	if identity.ID != req.UserID {
		utils.SendError(c, http.StatusBadRequest, "Invalid Access Token")
		return
	}

	exists, err := h.authRecordExists(&models.FacebookAuth{}, identity.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	if exists {
		// The provider-side account was already created by the sign-in flow;
		// remove it so the rejection leaves no orphaned external identity
		if err := h.Google.DeleteUser(c.Request.Context(), identity.ID); err != nil {
			utils.LogError(err, "Error deleting the orphaned Google account")
		}
		utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Account with %s has been registered from Facebook", identity.Email))
		return
	}

	exists, err = h.authRecordExists(&models.GoogleAuth{}, identity.Email)
	if err != nil {
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	if exists {
		utils.SendError(c, http.StatusBadRequest, fmt.Sprintf("Account with %s is existed", identity.Email))
		return
	}

	user := models.User{Name: identity.Name}
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		ggAuth := models.GoogleAuth{
			GgUserID: identity.ID,
			Email:    identity.Email,
			UserID:   user.ID,
		}
		return tx.Create(&ggAuth).Error
	})
	if err != nil {
		utils.LogError(err, "Error creating the Google-linked account")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	h.respondTokens(c, http.StatusCreated, user.ID)
}

// @Summary Get the current Facebook user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} serializers.FacebookProfileJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Facebook account"
// @Router /users/me/facebook [get]
func (h *Handler) GetFacebookProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	fbAuth, ok := h.findFacebookAuth(c, user.ID)
	if !ok {
		return
	}

	profile, err := h.facebookProfile(user, fbAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Facebook profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Update the current Facebook user's profile
// @Description Replace the display name and phone number
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.FacebookProfileUpdate true "New profile values"
// @Security BearerAuth
// @Success 200 {object} serializers.FacebookProfileJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Facebook account"
// @Router /users/me/facebook [put]
func (h *Handler) UpdateFacebookProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	fbAuth, ok := h.findFacebookAuth(c, user.ID)
	if !ok {
		return
	}

	var req models.FacebookProfileUpdate
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	user.Name = req.Name
	fbAuth.Phone = req.Phone
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("name", req.Name).Error; err != nil {
			return err
		}
		return tx.Model(&models.FacebookAuth{}).Where("id = ?", fbAuth.ID).Update("phone", req.Phone).Error
	})
	if err != nil {
		utils.LogError(err, "Error updating the Facebook profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	profile, err := h.facebookProfile(user, fbAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Facebook profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Delete the current Facebook user's account
// @Description Remove the user, its auth record, posts and likes in one unit
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} serializers.FacebookProfileJSON "Pre-delete snapshot"
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Facebook account"
// @Router /users/me/facebook [delete]
func (h *Handler) DeleteFacebookProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	fbAuth, ok := h.findFacebookAuth(c, user.ID)
	if !ok {
		return
	}

	snapshot, err := h.facebookProfile(user, fbAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Facebook profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	if err := h.deleteAccount(user.ID, &fbAuth); err != nil {
		utils.LogError(err, "Error deleting the Facebook-linked account")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

// @Summary Get the current Google user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} serializers.GoogleProfileJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Google account"
// @Router /users/me/google [get]
func (h *Handler) GetGoogleProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	ggAuth, ok := h.findGoogleAuth(c, user.ID)
	if !ok {
		return
	}

	profile, err := h.googleProfile(user, ggAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Google profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Update the current Google user's profile
// @Description Replace the display name and occupation
// @Tags users
// @Accept json
// @Produce json
// @Param body body models.GoogleProfileUpdate true "New profile values"
// @Security BearerAuth
// @Success 200 {object} serializers.GoogleProfileJSON
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Google account"
// @Router /users/me/google [put]
func (h *Handler) UpdateGoogleProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	ggAuth, ok := h.findGoogleAuth(c, user.ID)
	if !ok {
		return
	}

	var req models.GoogleProfileUpdate
	if !utils.ValidateRequestBody(c, &req) {
		return
	}

	user.Name = req.Name
	ggAuth.Occupation = req.Occupation
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Update("name", req.Name).Error; err != nil {
			return err
		}
		return tx.Model(&models.GoogleAuth{}).Where("id = ?", ggAuth.ID).Update("occupation", req.Occupation).Error
	})
	if err != nil {
		utils.LogError(err, "Error updating the Google profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	profile, err := h.googleProfile(user, ggAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Google profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}
	c.JSON(http.StatusOK, profile)
}

// @Summary Delete the current Google user's account
// @Description Remove the user, its auth record, posts and likes in one unit
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} serializers.GoogleProfileJSON "Pre-delete snapshot"
// @Failure 401 {object} utils.ErrorBody "Invalid token"
// @Failure 404 {object} utils.ErrorBody "No Google account"
// @Router /users/me/google [delete]
func (h *Handler) DeleteGoogleProfile(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	ggAuth, ok := h.findGoogleAuth(c, user.ID)
	if !ok {
		return
	}

	snapshot, err := h.googleProfile(user, ggAuth)
	if err != nil {
		utils.LogError(err, "Error serializing the Google profile")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	if err := h.deleteAccount(user.ID, &ggAuth); err != nil {
		utils.LogError(err, "Error deleting the Google-linked account")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusOK, snapshot)
}

func (h *Handler) authRecordExists(model interface{}, email string) (bool, error) {
	err := h.DB.First(model, "email = ?", email).Error
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	utils.LogError(err, "Error checking the email existence")
	return false, err
}

func (h *Handler) findFacebookAuth(c *gin.Context, userID string) (models.FacebookAuth, bool) {
	var fbAuth models.FacebookAuth
	if err := h.DB.First(&fbAuth, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "You haven't register a Facebook account")
		} else {
			utils.LogError(err, "Error looking up the Facebook auth record")
			utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		}
		return models.FacebookAuth{}, false
	}
	return fbAuth, true
}

func (h *Handler) findGoogleAuth(c *gin.Context, userID string) (models.GoogleAuth, bool) {
	var ggAuth models.GoogleAuth
	if err := h.DB.First(&ggAuth, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, "You haven't register a Google account")
		} else {
			utils.LogError(err, "Error looking up the Google auth record")
			utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		}
		return models.GoogleAuth{}, false
	}
	return ggAuth, true
}

func (h *Handler) facebookProfile(user models.User, fbAuth models.FacebookAuth) (serializers.FacebookProfileJSON, error) {
	posts, err := h.authoredPosts(user.ID)
	if err != nil {
		return serializers.FacebookProfileJSON{}, err
	}
	return serializers.FacebookProfileJSON{
		ID:    user.ID,
		Name:  user.Name,
		Phone: fbAuth.Phone,
		Posts: posts,
	}, nil
}

func (h *Handler) googleProfile(user models.User, ggAuth models.GoogleAuth) (serializers.GoogleProfileJSON, error) {
	posts, err := h.authoredPosts(user.ID)
	if err != nil {
		return serializers.GoogleProfileJSON{}, err
	}
	return serializers.GoogleProfileJSON{
		ID:         user.ID,
		Name:       user.Name,
		Occupation: ggAuth.Occupation,
		Posts:      posts,
	}, nil
}

func (h *Handler) authoredPosts(userID string) ([]serializers.PostJSON, error) {
	var posts []models.Post
	if err := h.DB.Preload("Author").Where("author_id = ?", userID).Find(&posts).Error; err != nil {
		return nil, err
	}
	return serializers.PostOverviewList(h.DB, posts, h.Cfg.LatestLikesLimit, h.Cfg.BodyOverviewLength)
}

// deleteAccount removes everything that hangs off a user in one transaction:
// likes placed on the user's posts, likes placed by the user, the posts, the
// provider-auth record and finally the user row. The subquery delete keeps
// strangers' likes on the user's posts from surviving as orphans.
func (h *Handler) deleteAccount(userID string, authRecord interface{}) error {
	return h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id IN (SELECT id FROM posts WHERE author_id = ?)", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(authRecord).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, "id = ?", userID).Error
	})
}

func (h *Handler) respondTokens(c *gin.Context, statusCode int, userID string) {
	accessToken, err := h.Tokens.GenerateAccessToken(userID)
	if err != nil {
		utils.LogError(err, "Error generating the access token")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	refreshToken, err := h.Tokens.GenerateRefreshToken(userID)
	if err != nil {
		utils.LogError(err, "Error generating the refresh token")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(statusCode, serializers.TokenPairJSON{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}
