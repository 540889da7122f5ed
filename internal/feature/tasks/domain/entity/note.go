// Package entity defines the core domain types for notes and to-do tasks.
package entity

import "time"

// MaxNoteContentLen is the longest note body the service accepts.
const MaxNoteContentLen = 200

// Note is a short free-text note belonging to a single user.
type Note struct {
	ID        string    `json:"id"`
	UserID    uint      `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
