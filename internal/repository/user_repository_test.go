package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawup/shelter-api/internal/domain"
)

var userCols = []string{"id", "last_name", "first_name", "email", "username", "password_hash", "access", "created_at", "updated_at"}

func TestUserRepository_Create(t *testing.T) {
	now := time.Date(2026, time.February, 3, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		wantErr   error
	}{
		{
			name: "inserts and fills generated fields",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Smith", "John", "jsmith@example.com", (*string)(nil), "hash", domain.AccessPublic).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("u1", now, now))
			},
		},
		{
			name: "duplicate email",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("Smith", "John", "jsmith@example.com", (*string)(nil), "hash", domain.AccessPublic).
					WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation})
			},
			wantErr: ErrDuplicate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err, "failed to create mock")
			defer mock.Close()

			tt.setupMock(mock)

			user := &domain.User{
				LastName:     "Smith",
				FirstName:    "John",
				Email:        "jsmith@example.com",
				PasswordHash: "hash",
				Access:       domain.AccessPublic,
			}
			err = NewUserRepository(mock).Create(context.Background(), user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "u1", user.ID)
				assert.Equal(t, now, user.CreatedAt)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	username := "jsmith"
	mock.ExpectQuery(`SELECT .+ FROM users WHERE lower\(email\)=lower\(\$1\)`).
		WithArgs("JSmith@example.com").
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u1", "Smith", "John", "jsmith@example.com", &username, "hash", domain.AccessAdmin, now, now))

	user, err := NewUserRepository(mock).GetByEmail(context.Background(), "JSmith@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, domain.AccessAdmin, user.Access)
	require.NotNil(t, user.Username)
	assert.Equal(t, "jsmith", *user.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByUsernameNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT .+ FROM users WHERE username=\$1`).
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	_, err = NewUserRepository(mock).GetByUsername(context.Background(), "ghost")
	require.ErrorIs(t, err, pgx.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery(`SELECT .+ FROM users ORDER BY created_at`).
		WillReturnRows(pgxmock.NewRows(userCols).
			AddRow("u1", "Smith", "John", "john@example.com", (*string)(nil), "h1", domain.AccessPublic, now, now).
			AddRow("u2", "Doe", "Jane", "jane@example.com", (*string)(nil), "h2", domain.AccessAdmin, now, now))

	users, err := NewUserRepository(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[1].ID)
	assert.Nil(t, users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_UpdateAccessAndDelete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(mock pgxmock.PgxPoolIface)
		run       func(repo UserRepository) error
		wantErr   error
	}{
		{
			name: "update access",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET access`).
					WithArgs(domain.AccessAdmin, "u1").
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			run: func(repo UserRepository) error {
				return repo.UpdateAccess(context.Background(), "u1", domain.AccessAdmin)
			},
		},
		{
			name: "update access on missing user",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`UPDATE users SET access`).
					WithArgs(domain.AccessAdmin, "nope").
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			run: func(repo UserRepository) error {
				return repo.UpdateAccess(context.Background(), "nope", domain.AccessAdmin)
			},
			wantErr: pgx.ErrNoRows,
		},
		{
			name: "delete",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs("u1").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
			run: func(repo UserRepository) error {
				return repo.Delete(context.Background(), "u1")
			},
		},
		{
			name: "delete database error",
			setupMock: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs("u1").
					WillReturnError(errors.New("connection refused"))
			},
			run: func(repo UserRepository) error {
				return repo.Delete(context.Background(), "u1")
			},
			wantErr: errors.New("connection refused"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			tt.setupMock(mock)
			err = tt.run(NewUserRepository(mock))

			switch {
			case tt.wantErr == nil:
				require.NoError(t, err)
			case errors.Is(tt.wantErr, pgx.ErrNoRows):
				require.ErrorIs(t, err, pgx.ErrNoRows)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
