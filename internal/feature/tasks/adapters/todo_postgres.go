package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"taskbite_backend/internal/feature/tasks/domain/entity"
	"taskbite_backend/internal/feature/tasks/usecase"
)

// TodoModel is the GORM representation of a to-do row.
type TodoModel struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    uint      `gorm:"not null;index"`
	Task      string    `gorm:"size:100;not null"`
	Priority  string    `gorm:"size:10;not null"`
	DueDate   time.Time `gorm:"not null;index"`
	Done      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (TodoModel) TableName() string {
	return "todos"
}

func todoToModel(e *entity.Todo) TodoModel {
	return TodoModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Task:      e.Task,
		Priority:  string(e.Priority),
		DueDate:   e.DueDate,
		Done:      e.Done,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (m TodoModel) ToEntity() entity.Todo {
	return entity.Todo{
		ID:        m.ID,
		UserID:    m.UserID,
		Task:      m.Task,
		Priority:  entity.Priority(m.Priority),
		DueDate:   m.DueDate,
		Done:      m.Done,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type todoPostgres struct {
	db *gorm.DB
}

var _ usecase.TodoRepository = (*todoPostgres)(nil)

func NewTodoRepository(db *gorm.DB) *todoPostgres {
	return &todoPostgres{db: db}
}

func (r *todoPostgres) Create(ctx context.Context, todo *entity.Todo) error {
	m := todoToModel(todo)
	return r.db.WithContext(ctx).Create(&m).Error
}

func (r *todoPostgres) FindByID(ctx context.Context, id string) (*entity.Todo, error) {
	var m TodoModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTodoNotFound
		}
		return nil, err
	}
	e := m.ToEntity()
	return &e, nil
}

func (r *todoPostgres) FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Todo, error) {
	q := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("due_date ASC")
	if from != nil {
		q = q.Where("due_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("due_date <= ?", *to)
	}

	var rows []TodoModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]entity.Todo, 0, len(rows))
	for _, m := range rows {
		out = append(out, m.ToEntity())
	}
	return out, nil
}

func (r *todoPostgres) Update(ctx context.Context, todo *entity.Todo) error {
	m := todoToModel(todo)
	// Updates with a struct skips zero values, so select the columns
	// explicitly to let Done=false through.
	result := r.db.WithContext(ctx).Model(&TodoModel{ID: m.ID}).
		Select("Task", "Priority", "DueDate", "Done", "UpdatedAt").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	return nil
}

func (r *todoPostgres) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&TodoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrTodoNotFound
	}
	return nil
}
