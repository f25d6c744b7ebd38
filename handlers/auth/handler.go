package auth

import (
	"errors"
	"fmt"
	"net/http"

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
	Tokens   *utils.TokenManager
	Facebook services.FacebookService
	Google   services.GoogleService
}

func NewHandler(database *gorm.DB, tokens *utils.TokenManager, facebook services.FacebookService, google services.GoogleService) *Handler {
	return &Handler{
		DB:       database,
		Tokens:   tokens,
		Facebook: facebook,
		Google:   google,
	}
}

// @Summary Log a Facebook user in
// @Description Exchange a Facebook access token for first-party tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Facebook access token"
// @Success 200 {object} serializers.TokenPairJSON
// @Failure 401 {object} utils.ErrorBody "Invalid Access Token"
// @Failure 404 {object} utils.ErrorBody "User not found"
// @Router /auth/facebook [post]
func (h *Handler) FacebookLogin(c *gin.Context) {
	var req models.LoginRequest
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

	var fbAuth models.FacebookAuth
	if err := h.DB.First(&fbAuth, "email = ?", identity.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, fmt.Sprintf("User with email %s not found", identity.Email))
			return
		}
		utils.LogError(err, "Error looking up the Facebook auth record")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	h.respondTokens(c, http.StatusOK, fbAuth.UserID)
}

// @Summary Log a Google user in
// @Description Exchange a Google ID token for first-party tokens
// @Tags auth
// @Accept json
// @Produce json
// @Param body body models.LoginRequest true "Google ID token"
// @Success 200 {object} serializers.TokenPairJSON
// @Failure 401 {object} utils.ErrorBody "Invalid Access Token"
// @Failure 404 {object} utils.ErrorBody "User not found"
// @Router /auth/google [post]
func (h *Handler) GoogleLogin(c *gin.Context) {
	var req models.LoginRequest
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

	var ggAuth models.GoogleAuth
	if err := h.DB.First(&ggAuth, "email = ?", identity.Email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendError(c, http.StatusNotFound, fmt.Sprintf("User with email %s not found", identity.Email))
			return
		}
		utils.LogError(err, "Error looking up the Google auth record")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	h.respondTokens(c, http.StatusOK, ggAuth.UserID)
}

// @Summary Refresh an expired access token
// @Description Mint a new access token for the refresh token's subject
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 201 {object} serializers.AccessTokenJSON
// @Failure 401 {object} utils.ErrorBody "Invalid or expired token"
// @Router /auth/token_refresh [post]
func (h *Handler) RefreshToken(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		utils.SendError(c, http.StatusUnauthorized, "User not found in token")
		return
	}

	accessToken, err := h.Tokens.GenerateAccessToken(userID)
	if err != nil {
		utils.LogError(err, "Error generating the access token")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
		return
	}

	c.JSON(http.StatusCreated, serializers.AccessTokenJSON{AccessToken: accessToken})
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
