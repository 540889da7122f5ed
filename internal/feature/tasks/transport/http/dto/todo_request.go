package dto

import "time"

// CreateTodoReq はToDo作成リクエストのボディです。
// DueDateはRFC 3339形式（例: 2024-08-10T00:00:00Z）で指定します。
type CreateTodoReq struct {
	Task     string    `json:"task" binding:"required,max=100"`
	Priority string    `json:"priority" binding:"required,oneof=high medium low"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// UpdateTodoReq はToDo更新リクエストのボディです。
type UpdateTodoReq struct {
	Task     string    `json:"task" binding:"required,max=100"`
	Priority string    `json:"priority" binding:"required,oneof=high medium low"`
	DueDate  time.Time `json:"due_date" binding:"required"`
}

// CompleteTodoReq は完了フラグ設定リクエストのボディです。
// ポインタにすることで done:false と欠落を区別します。
type CompleteTodoReq struct {
	Done *bool `json:"done" binding:"required"`
}
