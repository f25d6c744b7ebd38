package services

import (
	"context"
)

// Identity is what an identity provider vouches for after verifying a token
type Identity struct {
	ID    string
	Email string
	Name  string
}

// AuthError means the provider rejected the credential. Anything else
// returned by a verifier is a transport or provider fault.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// FacebookService verifies Facebook access tokens
type FacebookService interface {
	GetUser(ctx context.Context, accessToken string) (*Identity, error)
}

// GoogleService verifies Google ID tokens and can delete the provider-side
// account when local linking is rejected after the fact
type GoogleService interface {
	GetUser(ctx context.Context, idToken string) (*Identity, error)
	DeleteUser(ctx context.Context, uid string) error
}
