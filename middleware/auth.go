package middleware

import (
	"net/http"
	"strings"

	"blog-backend/models"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	currentUserKey   = "currentUser"
	currentUserIDKey = "currentUserID"
)

func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")

	if authHeader == "" {
		utils.SendError(c, http.StatusUnauthorized, "Authorization header missing")
		c.Abort()
		return "", false
	}

	authHeader = strings.Trim(authHeader, "\"' ")

	if !strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		authHeader = "Bearer " + authHeader
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		utils.SendError(c, http.StatusUnauthorized, "Invalid authorization format, expected: Bearer <token>")
		c.Abort()
		return "", false
	}

	return strings.Trim(parts[1], "\"' "), true
}

// JWTAuth guards endpoints behind an access token. The subject is resolved
// to its user row so handlers receive a concrete principal, and a token for
// a deleted account stops working immediately.
func JWTAuth(database *gorm.DB, tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			return
		}

		claims, err := tokens.Decode(tokenString, utils.AccessToken)
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			c.Abort()
			return
		}

		userID, _ := claims["sub"].(string)

		var user models.User
		if err := database.First(&user, "id = ?", userID).Error; err != nil {
			utils.SendError(c, http.StatusUnauthorized, "User not found")
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Set(currentUserIDKey, user.ID)
		c.Next()
	}
}

// RefreshJWTAuth guards the token refresh endpoint behind a refresh token
func RefreshJWTAuth(tokens *utils.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractBearerToken(c)
		if !ok {
			return
		}

		claims, err := tokens.Decode(tokenString, utils.RefreshToken)
		if err != nil {
			utils.SendError(c, http.StatusUnauthorized, "Invalid or expired token: "+err.Error())
			c.Abort()
			return
		}

		userID, _ := claims["sub"].(string)
		c.Set(currentUserIDKey, userID)
		c.Next()
	}
}

// CurrentUser returns the authenticated principal set by JWTAuth
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(currentUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}

// CurrentUserID returns the authenticated subject id set by either guard
func CurrentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(currentUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

// SetCurrentUser seeds the principal directly, bypassing token validation.
// Test helper.
func SetCurrentUser(c *gin.Context, user models.User) {
	c.Set(currentUserKey, user)
	c.Set(currentUserIDKey, user.ID)
}
