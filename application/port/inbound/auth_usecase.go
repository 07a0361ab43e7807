package inbound

import (
	"context"
)

type SignupRequest struct {
	Email    string
	Password string

	// Request metadata recorded in the activity log
	UserAgent string
	IPAddress string
}

type LoginRequest struct {
	Email    string
	Password string

	UserAgent string
	IPAddress string
}

type AuthResponse struct {
	AccessToken string `json:"token"`
	ExpiresIn   int    `json:"expires_in"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
}

type Profile struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Provider    string `json:"provider"`
	CreatedAt   string `json:"createdAt"`
}

// AuthUseCase defines the authentication operations exposed to the HTTP layer
type AuthUseCase interface {
	Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, userID string) (*Profile, error)
}
