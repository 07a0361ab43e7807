package outbound

// TokenClaims represents the claims carried by an access token
type TokenClaims struct {
	UserID string
}

// TokenService defines the interface for access token operations
type TokenService interface {
	GenerateAccessToken(claims TokenClaims) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
}
