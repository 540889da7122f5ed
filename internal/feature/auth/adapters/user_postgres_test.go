package adapters

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskbite_backend/internal/feature/auth/domain/entity"
	"taskbite_backend/internal/feature/auth/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{}, &SessionModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func newTestUser(username, email string) *entity.User {
	return &entity.User{
		Username: username,
		Email:    email,
		Name:     "Test User",
		Password: "hashed_password",
	}
}

func TestNewUserPostgres(t *testing.T) {
	db := setupTestDB(t)

	repo := NewUserPostgres(db)

	assert.NotNil(t, repo, "repository is nil")
	assert.NotNil(t, repo.db, "database connection is nil")
}

func TestUserPostgres_Create(t *testing.T) {
	t.Run("successful user creation", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := newTestUser("jane", "test@example.com")

		err := repo.Create(context.Background(), user)

		assert.NoError(t, err, "failed to create user")
		assert.NotZero(t, user.ID, "ID is not set")
		assert.False(t, user.CreatedAt.IsZero(), "CreatedAt is not set")
		assert.False(t, user.EmailVerified, "new user must be unverified")
	})

	t.Run("duplicate email error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		err := repo.Create(context.Background(), newTestUser("jane", "duplicate@example.com"))
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), newTestUser("joan", "duplicate@example.com"))

		assert.Error(t, err, "should return duplicate error")
	})

	t.Run("duplicate username error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		err := repo.Create(context.Background(), newTestUser("jane", "one@example.com"))
		require.NoError(t, err, "failed to create first user")

		err = repo.Create(context.Background(), newTestUser("jane", "two@example.com"))

		assert.Error(t, err, "should return duplicate error")
	})
}

func TestTranslateDuplicateErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{
			name: "postgres unique violation on email",
			err: &pgconn.PgError{
				Code:           "23505",
				Message:        `duplicate key value violates unique constraint "idx_users_email"`,
				ConstraintName: "idx_users_email",
			},
			expected: usecase.ErrEmailAlreadyExists,
		},
		{
			name: "postgres unique violation on username",
			err: &pgconn.PgError{
				Code:           "23505",
				Message:        `duplicate key value violates unique constraint "idx_users_username"`,
				ConstraintName: "idx_users_username",
			},
			expected: usecase.ErrUsernameAlreadyExists,
		},
		{
			name:     "unrelated postgres error passes through",
			err:      &pgconn.PgError{Code: "57014", Message: "canceling statement"},
			expected: nil, // returned unchanged
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := translateDuplicateErr(tt.err)
			if tt.expected != nil {
				assert.ErrorIs(t, got, tt.expected)
			} else {
				assert.Equal(t, tt.err, got, "non-duplicate errors must pass through unchanged")
			}
		})
	}
}

func TestUserPostgres_FindByEmail(t *testing.T) {
	t.Run("find user by email successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		expected := newTestUser("jane", "find@example.com")
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByEmail(context.Background(), "find@example.com")

		assert.NoError(t, err, "failed to find user")
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.ID, found.ID, "ID does not match")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
		assert.Equal(t, expected.Username, found.Username, "username does not match")
	})

	t.Run("email not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		found, err := repo.FindByEmail(context.Background(), "notfound@example.com")

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserPostgres_FindByID(t *testing.T) {
	t.Run("find user by ID successfully", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		expected := newTestUser("jane", "byid@example.com")
		err := repo.Create(context.Background(), expected)
		require.NoError(t, err, "failed to create test data")

		found, err := repo.FindByID(context.Background(), expected.ID)

		assert.NoError(t, err, "failed to find user")
		require.NotNil(t, found, "user is nil")
		assert.Equal(t, expected.Email, found.Email, "email does not match")
	})

	t.Run("ID not found error", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		found, err := repo.FindByID(context.Background(), 9999)

		assert.Nil(t, found, "user should be nil")
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "should return ErrUserNotFound")
	})
}

func TestUserPostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)

	user := newTestUser("jane", "update@example.com")
	require.NoError(t, repo.Create(context.Background(), user))

	user.Name = "Jane Updated"
	user.EmailVerified = true
	err := repo.Update(context.Background(), user)
	assert.NoError(t, err, "failed to update user")

	found, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Updated", found.Name)
	assert.True(t, found.EmailVerified)
}

func TestUserPostgres_Delete(t *testing.T) {
	t.Run("soft delete hides the user", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		user := newTestUser("jane", "delete@example.com")
		require.NoError(t, repo.Create(context.Background(), user))

		err := repo.Delete(context.Background(), user.ID)
		assert.NoError(t, err, "failed to delete user")

		_, err = repo.FindByID(context.Background(), user.ID)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "deleted user must not be found")

		// The row is retained with deleted_at set, never hard-deleted.
		var count int64
		db.Unscoped().Model(&entity.User{}).Where("id = ?", user.ID).Count(&count)
		assert.Equal(t, int64(1), count, "soft-deleted row should still exist")
	})

	t.Run("deleting unknown user returns not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserPostgres(db)

		err := repo.Delete(context.Background(), 9999)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)
	})
}
