package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db DBTX
}

func NewUserRepository(db DBTX) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	query := `SELECT username, email, full_name, disabled, hashed_password, created_at
			  FROM users WHERE username = $1`

	err := r.db.QueryRow(ctx, query, username).Scan(
		&user.Username, &user.Email, &user.FullName, &user.Disabled, &user.HashedPassword, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (username, email, full_name, disabled, hashed_password)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING username, email, full_name, disabled, hashed_password, created_at`

	var saved model.User
	err := r.db.QueryRow(ctx, query,
		user.Username, user.Email, user.FullName, user.Disabled, user.HashedPassword,
	).Scan(
		&saved.Username, &saved.Email, &saved.FullName, &saved.Disabled, &saved.HashedPassword, &saved.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrDuplicateUsername
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

// SetDisabled flips the disabled flag of an existing user. It is the
// administrative hook behind the disabled check in service.Auth.Authenticate.
func (r *UserRepository) SetDisabled(ctx context.Context, username string, disabled bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET disabled = $2 WHERE username = $1`, username, disabled)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
