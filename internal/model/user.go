package model

import (
	"context"
	"time"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) (User, error)
}

// User represents a stored user with authentication material.
type User struct {
	Username       string
	Email          string
	FullName       *string
	Disabled       bool
	HashedPassword string
	CreatedAt      time.Time
}

// PublicUser is the user view returned to API clients.
type PublicUser struct {
	Username string  `json:"username"`
	Email    string  `json:"email"`
	FullName *string `json:"full_name"`
	Disabled bool    `json:"disabled"`
}

// Public strips authentication material from the user.
func (u User) Public() PublicUser {
	return PublicUser{
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Disabled: u.Disabled,
	}
}

// RegisterParams contains parameters to register a user.
type RegisterParams struct {
	Username string  `json:"username" validate:"required"`
	Email    string  `json:"email" validate:"required,email"`
	FullName *string `json:"full_name"`
	Password string  `json:"password" validate:"required"`
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}
