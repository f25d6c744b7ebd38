package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

const (
	AccessToken  = "access"
	RefreshToken = "refresh"
)

// TokenManager mints and decodes the first-party session tokens. Both token
// kinds are stateless HS256 credentials carrying the user id as subject; the
// "typ" claim keeps a refresh token from being replayed as an access token.
type TokenManager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenManager(secret string, accessTTL, refreshTTL time.Duration) *TokenManager {
	return &TokenManager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// GenerateAccessToken mints a short-lived access token for the user
func (tm *TokenManager) GenerateAccessToken(userID string) (string, error) {
	return tm.generate(userID, AccessToken, tm.accessTTL)
}

// GenerateRefreshToken mints a long-lived refresh token for the user
func (tm *TokenManager) GenerateRefreshToken(userID string) (string, error) {
	return tm.generate(userID, RefreshToken, tm.refreshTTL)
}

func (tm *TokenManager) generate(userID, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"typ": tokenType,
		"exp": time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Decode validates the signature and expiry and checks the token kind
func (tm *TokenManager) Decode(tokenString, tokenType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signature method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid or expired token")
	}

	if claims["typ"] != tokenType {
		return nil, fmt.Errorf("wrong token type, expected a %s token", tokenType)
	}

	return claims, nil
}
