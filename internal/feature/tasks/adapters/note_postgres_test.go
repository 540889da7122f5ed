package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"taskbite_backend/internal/feature/tasks/domain/entity"
	"taskbite_backend/internal/feature/tasks/usecase"
)

// setupTestDB creates an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&NoteModel{}, &TodoModel{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// newTestNote builds a note entity owned by userID.
func newTestNote(userID uint, content string, createdAt time.Time) *entity.Note {
	return &entity.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestNotePostgres_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepository(db)

	note := newTestNote(1, "buy milk", time.Now())
	require.NoError(t, repo.Create(context.Background(), note))

	found, err := repo.FindByID(context.Background(), note.ID)
	assert.NoError(t, err)
	assert.Equal(t, note.ID, found.ID)
	assert.Equal(t, uint(1), found.UserID)
	assert.Equal(t, "buy milk", found.Content)
}

func TestNotePostgres_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, usecase.ErrNoteNotFound)
}

func TestNotePostgres_FindByUserID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepository(db)

	base := time.Date(2024, 8, 10, 12, 0, 0, 0, time.UTC)

	oldNote := newTestNote(1, "old", base.AddDate(0, 0, -10))
	midNote := newTestNote(1, "mid", base)
	newNote := newTestNote(1, "new", base.AddDate(0, 0, 10))
	foreign := newTestNote(2, "not mine", base)

	for _, n := range []*entity.Note{oldNote, midNote, newNote, foreign} {
		require.NoError(t, repo.Create(context.Background(), n))
	}

	t.Run("all notes for the owner, newest first", func(t *testing.T) {
		notes, err := repo.FindByUserID(context.Background(), 1, nil, nil)
		assert.NoError(t, err)
		require.Len(t, notes, 3)
		assert.Equal(t, "new", notes[0].Content)
		assert.Equal(t, "old", notes[2].Content)
	})

	t.Run("date range filters by created_at", func(t *testing.T) {
		from := base.AddDate(0, 0, -1)
		to := base.AddDate(0, 0, 1)

		notes, err := repo.FindByUserID(context.Background(), 1, &from, &to)
		assert.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "mid", notes[0].Content)
	})

	t.Run("other users' notes are invisible", func(t *testing.T) {
		notes, err := repo.FindByUserID(context.Background(), 2, nil, nil)
		assert.NoError(t, err)
		require.Len(t, notes, 1)
		assert.Equal(t, "not mine", notes[0].Content)
	})
}

func TestNotePostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepository(db)

	note := newTestNote(1, "before", time.Now())
	require.NoError(t, repo.Create(context.Background(), note))

	note.Content = "after"
	note.UpdatedAt = time.Now()
	assert.NoError(t, repo.Update(context.Background(), note))

	found, err := repo.FindByID(context.Background(), note.ID)
	assert.NoError(t, err)
	assert.Equal(t, "after", found.Content)
}

func TestNotePostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewNoteRepository(db)

	note := newTestNote(1, "doomed", time.Now())
	require.NoError(t, repo.Create(context.Background(), note))

	assert.NoError(t, repo.Delete(context.Background(), note.ID))

	_, err := repo.FindByID(context.Background(), note.ID)
	assert.ErrorIs(t, err, usecase.ErrNoteNotFound)

	// Deleting again reports not found
	assert.ErrorIs(t, repo.Delete(context.Background(), note.ID), usecase.ErrNoteNotFound)
}
