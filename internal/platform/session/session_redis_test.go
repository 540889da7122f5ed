package session

import (
	"context"
	"testing"
	"time"

	"taskbite_backend/internal/feature/auth/domain/entity"
	"taskbite_backend/internal/feature/auth/usecase"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis instance for testing.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err, "failed to start miniredis")

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		_ = client.Close()
		mr.Close()
	})

	return client, mr
}

// newSession builds a session entity for testing.
func newSession(id string, userID uint, expiresIn time.Duration) *entity.Session {
	now := time.Now()
	return &entity.Session{
		ID:        id,
		UserID:    userID,
		UserAgent: "test-agent",
		IPAddress: "127.0.0.1",
		CreatedAt: now,
		ExpiresAt: now.Add(expiresIn),
	}
}

func TestSessionRedis_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session *entity.Session
		wantErr bool
	}{
		{
			name:    "success: create session",
			session: newSession("sess-create", 1, 30*24*time.Hour),
			wantErr: false,
		},
		{
			name:    "failure: already-expired session",
			session: newSession("sess-expired", 1, -1*time.Hour),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client, _ := setupTestRedis(t)
			repo := NewSessionRedis(client, "session")

			err := repo.Create(context.Background(), tt.session)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)

			data, err := client.Get(context.Background(), repo.sessionKey(tt.session.ID)).Result()
			assert.NoError(t, err)
			assert.NotEmpty(t, data)

			isMember, err := client.SIsMember(context.Background(), repo.userSessionsKey(tt.session.UserID), tt.session.ID).Result()
			assert.NoError(t, err)
			assert.True(t, isMember)
		})
	}
}

func TestSessionRedis_FindByID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	sess := newSession("sess-find", 1, 30*24*time.Hour)
	require.NoError(t, repo.Create(context.Background(), sess))

	found, err := repo.FindByID(context.Background(), "sess-find")
	assert.NoError(t, err)
	assert.Equal(t, sess.ID, found.ID)
	assert.Equal(t, sess.UserID, found.UserID)

	_, err = repo.FindByID(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_FindByUserID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), newSession("u1-a", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newSession("u1-b", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newSession("u2-a", 2, 30*24*time.Hour)))

	sessions, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, sessions, 2)

	sessions, err = repo.FindByUserID(context.Background(), 2)
	assert.NoError(t, err)
	assert.Len(t, sessions, 1)

	sessions, err = repo.FindByUserID(context.Background(), 999)
	assert.NoError(t, err)
	assert.Len(t, sessions, 0)
}

func TestSessionRedis_FindByUserID_PrunesExpired(t *testing.T) {
	t.Parallel()

	client, mr := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), newSession("short-lived", 1, time.Minute)))
	require.NoError(t, repo.Create(context.Background(), newSession("long-lived", 1, 30*24*time.Hour)))

	// Let the short-lived session's TTL lapse in miniredis.
	mr.FastForward(2 * time.Minute)

	sessions, err := repo.FindByUserID(context.Background(), 1)
	assert.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "long-lived", sessions[0].ID)

	// The stale ID must have been pruned from the membership set.
	isMember, err := client.SIsMember(context.Background(), repo.userSessionsKey(1), "short-lived").Result()
	assert.NoError(t, err)
	assert.False(t, isMember)
}

func TestSessionRedis_Revoke(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), newSession("sess-revoke", 1, 30*24*time.Hour)))

	err := repo.Revoke(context.Background(), "sess-revoke")
	assert.NoError(t, err)

	// The record stays readable so refresh attempts see "revoked",
	// not "not found".
	found, err := repo.FindByID(context.Background(), "sess-revoke")
	assert.NoError(t, err)
	assert.NotNil(t, found.RevokedAt)
	assert.False(t, found.IsValid())

	ttl, err := client.TTL(context.Background(), repo.sessionKey("sess-revoke")).Result()
	assert.NoError(t, err)
	assert.LessOrEqual(t, ttl, revokedRetention)

	err = repo.Revoke(context.Background(), "no-such-session")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)
}

func TestSessionRedis_RevokeAllByUserID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), newSession("u1-a", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newSession("u1-b", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newSession("u2-a", 2, 30*24*time.Hour)))

	err := repo.RevokeAllByUserID(context.Background(), 1)
	assert.NoError(t, err)

	found1, _ := repo.FindByID(context.Background(), "u1-a")
	found2, _ := repo.FindByID(context.Background(), "u1-b")
	assert.NotNil(t, found1.RevokedAt)
	assert.NotNil(t, found2.RevokedAt)

	// Other users' sessions are untouched.
	found3, _ := repo.FindByID(context.Background(), "u2-a")
	assert.Nil(t, found3.RevokedAt)
}

func TestSessionRedis_CountByUserID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	require.NoError(t, repo.Create(context.Background(), newSession("count-a", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Create(context.Background(), newSession("count-b", 1, 30*24*time.Hour)))
	require.NoError(t, repo.Revoke(context.Background(), "count-a"))

	count, err := repo.CountByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count, "revoked sessions must not be counted")
}

func TestSessionRedis_DeleteOldestByUserID(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "session")

	now := time.Now()
	oldest := &entity.Session{
		ID:        "oldest",
		UserID:    1,
		CreatedAt: now.Add(-2 * time.Hour),
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}
	newest := &entity.Session{
		ID:        "newest",
		UserID:    1,
		CreatedAt: now.Add(-1 * time.Hour),
		ExpiresAt: now.Add(30 * 24 * time.Hour),
	}

	require.NoError(t, repo.Create(context.Background(), oldest))
	require.NoError(t, repo.Create(context.Background(), newest))

	err := repo.DeleteOldestByUserID(context.Background(), 1)
	assert.NoError(t, err)

	_, err = repo.FindByID(context.Background(), "oldest")
	assert.ErrorIs(t, err, usecase.ErrSessionNotFound)

	found, err := repo.FindByID(context.Background(), "newest")
	assert.NoError(t, err)
	assert.NotNil(t, found)
}

func TestSessionRedis_KeyGeneration(t *testing.T) {
	t.Parallel()

	client, _ := setupTestRedis(t)
	repo := NewSessionRedis(client, "test-prefix")

	assert.Equal(t, "test-prefix:abc", repo.sessionKey("abc"))
	assert.Equal(t, "test-prefix:user:123", repo.userSessionsKey(123))
}
