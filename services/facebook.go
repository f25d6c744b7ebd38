package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type facebookGraph struct {
	baseURL string
	client  *http.Client
}

// NewFacebookService builds a verifier backed by the Facebook Graph API
func NewFacebookService(baseURL string) FacebookService {
	return &facebookGraph{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type graphResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// GetUser asks the Graph API who the access token belongs to. A payload
// carrying an "error" member is a rejection, not a fault.
func (s *facebookGraph) GetUser(ctx context.Context, accessToken string) (*Identity, error) {
	endpoint := fmt.Sprintf("%s/me?fields=id,name,email&access_token=%s", s.baseURL, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error calling the Graph API: %w", err)
	}
	defer resp.Body.Close()

	var payload graphResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("error decoding the Graph API response: %w", err)
	}

	if payload.Error != nil {
		return nil, &AuthError{Message: payload.Error.Message}
	}

	return &Identity{
		ID:    payload.ID,
		Email: payload.Email,
		Name:  payload.Name,
	}, nil
}
