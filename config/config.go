package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds every runtime setting. It is built once in main and handed
// to the components that need it instead of being read from globals.
type Config struct {
	DatabaseURL string
	Port        string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	PostsPerPage       int
	LikesPerPage       int
	BodyOverviewLength int
	LatestLikesLimit   int

	FacebookGraphURL        string
	FirebaseCredentialsJSON string
	FirebaseProjectID       string
}

func Load() *Config {
	return &Config{
		DatabaseURL: os.Getenv("DB_URL"),
		Port:        getEnv("PORT", "8080"),

		JWTSecret:       getEnv("JWT_SECRET", "you-will-never-guess"),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_HOURS", 10)) * time.Hour,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_DAYS", 30)) * 24 * time.Hour,

		PostsPerPage:       getEnvInt("POSTS_PER_PAGE", 10),
		LikesPerPage:       getEnvInt("LIKES_PER_PAGE", 5),
		BodyOverviewLength: getEnvInt("BODY_OVERVIEW_LENGTH", 100),
		LatestLikesLimit:   getEnvInt("LATEST_LIKES_LIMIT", 3),

		FacebookGraphURL:        getEnv("FACEBOOK_GRAPH_URL", "https://graph.facebook.com"),
		FirebaseCredentialsJSON: os.Getenv("FIREBASE_CREDENTIALS_JSON"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
