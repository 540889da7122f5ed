package dto

import (
	"time"

	"taskbite_backend/internal/feature/tasks/domain/entity"
)

// TodoResponse はToDoのレスポンスDTOです。
type TodoResponse struct {
	ID        string    `json:"id"`
	Task      string    `json:"task"`
	Priority  string    `json:"priority"`
	DueDate   time.Time `json:"due_date"`
	Done      bool      `json:"done"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TodoResponseFromEntity はエンティティからレスポンスDTOを生成します。
func TodoResponseFromEntity(t *entity.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Task:      t.Task,
		Priority:  string(t.Priority),
		DueDate:   t.DueDate,
		Done:      t.Done,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// TodoResponsesFromEntities はエンティティのスライスをレスポンスDTOに変換します。
func TodoResponsesFromEntities(todos []entity.Todo) []TodoResponse {
	out := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		out = append(out, TodoResponseFromEntity(&todos[i]))
	}
	return out
}
