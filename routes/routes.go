package routes

import (
	"fmt"
	"net/http"
	"time"

	"blog-backend/config"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires every route group onto a fresh engine. All collaborators
// are passed in; nothing is resolved from globals.
func SetupRouter(database *gorm.DB, cfg *config.Config, tokens *utils.TokenManager, facebook services.FacebookService, google services.GoogleService) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.LogError(fmt.Errorf("%v", recovered), "Unhandled panic while serving the request")
		utils.SendError(c, http.StatusInternalServerError, "An unexpected error has occurred")
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		utils.SendError(c, http.StatusNotFound, "The requested URL was not found on the server. If you entered the URL manually please check your spelling and try again.")
	})

	api := r.Group("/api/v1")
	AuthRoutes(api, database, tokens, facebook, google)
	UsersRoutes(api, database, cfg, tokens, facebook, google)
	PostsRoutes(api, database, cfg, tokens)

	return r
}
