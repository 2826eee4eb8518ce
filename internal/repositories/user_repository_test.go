package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/devhub/backend/internal/models"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, _ := zap.NewDevelopment()
	repo := NewUserRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
		expectedID    int64
	}{
		{
			name: "success",
			user: &models.User{
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				DisplayName:  "Alice",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "alice@example.com", "hash", "Alice", "", "", models.RoleUser).
					WillReturnResult(sqlmock.NewResult(42, 1))
			},
			expectedID: 42,
		},
		{
			name: "duplicate username",
			user: &models.User{
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				DisplayName:  "Alice",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "alice@example.com", "hash", "Alice", "", "", models.RoleUser).
					WillReturnError(&mysql.MySQLError{
						Number:  1062,
						Message: "Duplicate entry 'alice' for key 'uq_users_username'",
					})
			},
			expectedError: models.ErrUsernameExists,
		},
		{
			name: "duplicate email",
			user: &models.User{
				Username:     "alice2",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				DisplayName:  "Alice",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice2", "alice@example.com", "hash", "Alice", "", "", models.RoleUser).
					WillReturnError(&mysql.MySQLError{
						Number:  1062,
						Message: "Duplicate entry 'alice@example.com' for key 'uq_users_email'",
					})
			},
			expectedError: models.ErrEmailExists,
		},
		{
			name: "database error",
			user: &models.User{
				Username:     "alice",
				Email:        "alice@example.com",
				PasswordHash: "hash",
				DisplayName:  "Alice",
				Role:         models.RoleUser,
			},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice", "alice@example.com", "hash", "Alice", "", "", models.RoleUser).
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: errors.New("failed to create user"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			switch {
			case tt.expectedError == nil:
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
			case errors.Is(tt.expectedError, models.ErrUsernameExists) || errors.Is(tt.expectedError, models.ErrEmailExists):
				assert.ErrorIs(t, err, tt.expectedError)
			default:
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.expectedError.Error())
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByUsername(t *testing.T) {
	now := time.Now()

	userColumns := []string{
		"id", "username", "email", "password_hash", "display_name",
		"bio", "avatar_url", "role", "created_at", "updated_at",
	}

	tests := []struct {
		name          string
		username      string
		setupMock     func(sqlmock.Sqlmock)
		expectedError error
	}{
		{
			name:     "success",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(userColumns).
					AddRow(1, "alice", "alice@example.com", "hash", "Alice", "", "", "USER", now, now)
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("alice").
					WillReturnRows(rows)
			},
		},
		{
			name:     "not found",
			username: "nobody",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("nobody").
					WillReturnRows(sqlmock.NewRows(userColumns))
			},
			expectedError: models.ErrNotFound,
		},
		{
			name:     "database error",
			username: "alice",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT (.+) FROM users`).
					WithArgs("alice").
					WillReturnError(errors.New("connection refused"))
			},
			expectedError: errors.New("failed to get user by username"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByUsername(context.Background(), tt.username)

			if tt.expectedError != nil {
				require.Error(t, err)
				assert.Nil(t, user)
				if errors.Is(tt.expectedError, models.ErrNotFound) {
					assert.ErrorIs(t, err, models.ErrNotFound)
				} else {
					assert.Contains(t, err.Error(), tt.expectedError.Error())
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, "alice", user.Username)
				assert.Equal(t, models.RoleUser, user.Role)
				assert.Equal(t, "hash", user.PasswordHash)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ExistsByUsername(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.ExistsByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	exists, err := repo.ExistsByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Count(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT COUNT`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(17), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
