package services

import (
	"context"
	"fmt"

	"blog-backend/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

type firebaseGoogle struct {
	client *auth.Client
}

// NewGoogleService builds a verifier backed by the Firebase Admin SDK
func NewGoogleService(ctx context.Context, cfg *config.Config) (GoogleService, error) {
	if cfg.FirebaseCredentialsJSON == "" {
		return nil, fmt.Errorf("the environment variable FIREBASE_CREDENTIALS_JSON must be defined")
	}

	opt := option.WithCredentialsJSON([]byte(cfg.FirebaseCredentialsJSON))
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.FirebaseProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing the Firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting the Firebase Auth client: %w", err)
	}

	return &firebaseGoogle{client: client}, nil
}

// GetUser verifies the ID token. Signature, expiry and provider faults all
// collapse into the same rejection.
func (s *firebaseGoogle) GetUser(ctx context.Context, idToken string) (*Identity, error) {
	token, err := s.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, &AuthError{Message: "Invalid Access Token"}
	}

	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	return &Identity{
		ID:    token.UID,
		Email: email,
		Name:  name,
	}, nil
}

// DeleteUser removes the provider-side account, the compensating action for
// a registration rejected after the identity was already verified
func (s *firebaseGoogle) DeleteUser(ctx context.Context, uid string) error {
	return s.client.DeleteUser(ctx, uid)
}
