package routes

import (
	"blog-backend/handlers/auth"
	"blog-backend/middleware"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRoutes(api *gin.RouterGroup, database *gorm.DB, tokens *utils.TokenManager, facebook services.FacebookService, google services.GoogleService) {
	h := auth.NewHandler(database, tokens, facebook, google)

	api.POST("/auth/facebook", h.FacebookLogin)
	api.POST("/auth/google", h.GoogleLogin)
	api.POST("/auth/token_refresh", middleware.RefreshJWTAuth(tokens), h.RefreshToken)
}
