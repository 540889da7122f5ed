package dto

import (
	"time"

	"taskbite_backend/internal/feature/tasks/domain/entity"
)

// NoteResponse はノートのレスポンスDTOです。
type NoteResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NoteResponseFromEntity はエンティティからレスポンスDTOを生成します。
func NoteResponseFromEntity(n *entity.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

// NoteResponsesFromEntities はエンティティのスライスをレスポンスDTOに変換します。
func NoteResponsesFromEntities(notes []entity.Note) []NoteResponse {
	out := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, NoteResponseFromEntity(&notes[i]))
	}
	return out
}
