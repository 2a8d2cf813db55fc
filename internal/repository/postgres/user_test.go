package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studentinfo-server/internal/model"
)

var userColumns = []string{"username", "email", "full_name", "disabled", "hashed_password", "created_at"}

func ptr[T any](v T) *T { return &v }

func TestUserRepository_GetByUsername(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		want      model.User
		wantErr   error
		errMsg    string
	}{
		{
			name: "found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(userColumns).
					AddRow("alice", "alice@example.com", ptr("Alice Smith"), false, "hash", createdAt)
				mock.ExpectQuery(`SELECT username, email, full_name, disabled, hashed_password, created_at`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
			want: model.User{
				Username:       "alice",
				Email:          "alice@example.com",
				FullName:       ptr("Alice Smith"),
				HashedPassword: "hash",
				CreatedAt:      createdAt,
			},
		},
		{
			name: "not found",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE username`).
					WithArgs("alice").
					WillReturnRows(pgxmock.NewRows(userColumns))
			},
			wantErr: model.ErrNotFound,
		},
		{
			name: "database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`FROM users WHERE username`).
					WithArgs("alice").
					WillReturnError(errors.New("connection refused"))
			},
			errMsg: "connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			got, err := repo.GetByUsername(context.Background(), "alice")

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_Create(t *testing.T) {
	createdAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	user := model.User{
		Username:       "bob",
		Email:          "bob@example.com",
		HashedPassword: "hash",
	}

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
		errMsg    string
	}{
		{
			name: "created",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				rows := pgxmock.NewRows(userColumns).
					AddRow("bob", "bob@example.com", (*string)(nil), false, "hash", createdAt)
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("bob", "bob@example.com", pgxmock.AnyArg(), false, "hash").
					WillReturnRows(rows)
			},
		},
		{
			name: "duplicate username",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("bob", "bob@example.com", pgxmock.AnyArg(), false, "hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: model.ErrDuplicateUsername,
		},
		{
			name: "other error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("bob", "bob@example.com", pgxmock.AnyArg(), false, "hash").
					WillReturnError(&pgconn.PgError{Code: pgerrcode.NotNullViolation})
			},
			errMsg: "failed to create user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)

			repo := NewUserRepository(mock)
			saved, err := repo.Create(context.Background(), user)

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errMsg != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.NotErrorIs(t, err, model.ErrDuplicateUsername)
			default:
				require.NoError(t, err)
				assert.Equal(t, "bob", saved.Username)
				assert.Nil(t, saved.FullName)
				assert.Equal(t, createdAt, saved.CreatedAt)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_SetDisabled(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET disabled = $2 WHERE username = $1`)).
		WithArgs("alice", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE users SET disabled = $2 WHERE username = $1`)).
		WithArgs("ghost", true).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewUserRepository(mock)
	require.NoError(t, repo.SetDisabled(context.Background(), "alice", true))
	assert.ErrorIs(t, repo.SetDisabled(context.Background(), "ghost", true), model.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
