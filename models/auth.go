package models

// RegisterRequest is the request body for the provider registration endpoints
type RegisterRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
	UserID      string `json:"userId" binding:"required"`
}

// LoginRequest is the request body for the provider login endpoints
type LoginRequest struct {
	AccessToken string `json:"accessToken" binding:"required"`
}
