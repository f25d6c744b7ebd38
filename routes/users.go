package routes

import (
	"blog-backend/config"
	"blog-backend/handlers/users"
	"blog-backend/middleware"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func UsersRoutes(api *gin.RouterGroup, database *gorm.DB, cfg *config.Config, tokens *utils.TokenManager, facebook services.FacebookService, google services.GoogleService) {
	h := users.NewHandler(database, cfg, tokens, facebook, google)

	// Registration is the only unauthenticated user surface
	api.POST("/users/registrations/facebook", h.RegisterFacebook)
	api.POST("/users/registrations/google", h.RegisterGoogle)

	me := api.Group("/users/me")
	me.Use(middleware.JWTAuth(database, tokens))
	{
		me.GET("/facebook", h.GetFacebookProfile)
		me.PUT("/facebook", h.UpdateFacebookProfile)
		me.DELETE("/facebook", h.DeleteFacebookProfile)

		me.GET("/google", h.GetGoogleProfile)
		me.PUT("/google", h.UpdateGoogleProfile)
		me.DELETE("/google", h.DeleteGoogleProfile)
	}
}
