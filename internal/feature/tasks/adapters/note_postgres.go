package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskbite_backend/internal/feature/tasks/domain/entity"
	"taskbite_backend/internal/feature/tasks/usecase"
)

// NoteModel is the GORM representation of a note row.
type NoteModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	Content   string    `gorm:"size:200;not null"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (NoteModel) TableName() string {
	return "notes"
}

func noteToModel(e *entity.Note) NoteModel {
	return NoteModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Content:   e.Content,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m NoteModel) ToEntity() entity.Note {
	return entity.Note{
		ID:        m.ID,
		UserID:    m.UserID,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type notePostgres struct {
	db *gorm.DB
}

var _ usecase.NoteRepository = (*notePostgres)(nil)

func NewNoteRepository(db *gorm.DB) *notePostgres {
	return &notePostgres{db: db}
}

func (r *notePostgres) Create(ctx context.Context, note *entity.Note) error {
	m := noteToModel(note)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *notePostgres) FindByID(ctx context.Context, id string) (*entity.Note, error) {
	var m NoteModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNoteNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

func (r *notePostgres) FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Note, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")
	if from != nil {
		q = q.Where("created_at >= ?", *from)
	}
	if to != nil {
		q = q.Where("created_at <= ?", *to)
	}

	var rows []NoteModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Note, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

func (r *notePostgres) Update(ctx context.Context, note *entity.Note) error {
	m := noteToModel(note)
	result := r.db.WithContext(ctx).Save(&m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}

func (r *notePostgres) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&NoteModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrNoteNotFound
	}
	return nil
}
