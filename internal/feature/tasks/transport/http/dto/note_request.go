// Package dto はノート・ToDoエンドポイントのリクエスト/レスポンス型を定義します。
package dto

// CreateNoteReq はノート作成リクエストのボディです。
type CreateNoteReq struct {
	Content string `json:"content" binding:"required,max=200"`
}

// UpdateNoteReq はノート更新リクエストのボディです。
type UpdateNoteReq struct {
	Content string `json:"content" binding:"required,max=200"`
}
