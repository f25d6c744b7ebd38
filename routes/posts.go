package routes

import (
	"blog-backend/config"
	"blog-backend/handlers/posts"
	"blog-backend/handlers/posts/likes"
	"blog-backend/middleware"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func PostsRoutes(api *gin.RouterGroup, database *gorm.DB, cfg *config.Config, tokens *utils.TokenManager) {
	h := posts.NewHandler(database, cfg)
	lh := likes.NewHandler(database, cfg)

	postsRoutes := api.Group("/posts")
	postsRoutes.Use(middleware.JWTAuth(database, tokens))
	{
		postsRoutes.GET("", h.GetPosts)
		postsRoutes.POST("", h.CreatePost)
		postsRoutes.GET("/:id", h.GetPostByID)
		postsRoutes.PUT("/:id", h.UpdatePost)
		postsRoutes.DELETE("/:id", h.DeletePost)

		postsRoutes.GET("/:id/likes", lh.GetPostLikes)
	}

	likesRoutes := api.Group("/users/me/likes")
	likesRoutes.Use(middleware.JWTAuth(database, tokens))
	{
		likesRoutes.PUT("/:post_id", lh.LikePost)
		likesRoutes.DELETE("/:post_id", lh.UnlikePost)
	}
}
