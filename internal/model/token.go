package model

import "time"

// TokenTypeBearer is the only token type issued by the service.
const TokenTypeBearer = "bearer"

// TokenManager issues and verifies signed access tokens.
type TokenManager interface {
	Issue(subject string, ttl time.Duration) (string, error)
	Parse(token string) (subject string, err error)
}

// Token is the login response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}
