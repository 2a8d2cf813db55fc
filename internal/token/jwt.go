package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey []byte
	method    jwt.SigningMethod
	now       func() time.Time
}

// NewJWT creates a new JWT token manager with the provided secret key and algorithm.
func NewJWT(secretKey, algorithm string) (*JWT, error) {
	if secretKey == "" {
		return nil, errors.New("secret key must not be empty")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &JWT{
		secretKey: []byte(secretKey),
		method:    method,
		now:       time.Now,
	}, nil
}

// Issue creates a token for subject valid for ttl.
func (j *JWT) Issue(subject string, ttl time.Duration) (string, error) {
	now := j.now()
	token := jwt.NewWithClaims(j.method, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// Parse validates the token and returns its subject.
func (j *JWT) Parse(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{j.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", model.ErrExpired
		case errors.Is(err, jwt.ErrTokenRequiredClaimMissing):
			return "", model.ErrMalformedClaims
		default:
			return "", fmt.Errorf("%w: %v", model.ErrInvalidSignature, err)
		}
	}

	if claims.Subject == "" {
		return "", model.ErrMalformedClaims
	}

	return claims.Subject, nil
}
