package main

import (
	"context"
	"log"

	"blog-backend/config"
	"blog-backend/db"
	_ "blog-backend/docs"
	"blog-backend/routes"
	"blog-backend/services"
	"blog-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Blog GotIt API
// @version 1.0
// @description Blog backend with Facebook and Google sign-in
// @BasePath /api/v1
// @SecurityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter the JWT with the Bearer prefix: Bearer <JWT>
func main() {
	gin.SetMode(gin.ReleaseMode)

	if err := godotenv.Load(); err != nil {
		utils.LogInfo("No .env file found, reading the configuration from the environment")
	}

	cfg := config.Load()

	database, err := db.Connect(cfg)
	if err != nil {
		log.Fatal("Error initializing the database: ", err)
	}

	google, err := services.NewGoogleService(context.Background(), cfg)
	if err != nil {
		log.Fatal("Error initializing the Google verifier: ", err)
	}
	facebook := services.NewFacebookService(cfg.FacebookGraphURL)

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	r := routes.SetupRouter(database, cfg, tokens, facebook, google)

	utils.LogSuccess("Server startup")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Error starting the server: ", err)
	}
}
