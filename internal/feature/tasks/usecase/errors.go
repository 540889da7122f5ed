package usecase

import "errors"

// ノート・ToDo操作で発生しうる業務エラー。
// ハンドラー層でHTTPステータスコードに変換されます。
var (
	// ErrNoteNotFound はノートが存在しないか、呼び出し元の所有物でない場合に返されます。
	// 他ユーザーの行の存在を漏らさないため、所有者違いも同じエラーにします。
	ErrNoteNotFound = errors.New("note not found")

	// ErrTodoNotFound はToDoが存在しないか、呼び出し元の所有物でない場合に返されます。
	ErrTodoNotFound = errors.New("todo not found")

	// ErrContentRequired はノート本文が空の場合に返されます。
	ErrContentRequired = errors.New("content is required")

	// ErrContentTooLong はノート本文が上限を超えた場合に返されます。
	ErrContentTooLong = errors.New("content is too long")

	// ErrTaskRequired はToDoのタスク説明が空の場合に返されます。
	ErrTaskRequired = errors.New("task is required")

	// ErrTaskTooLong はToDoのタスク説明が上限を超えた場合に返されます。
	ErrTaskTooLong = errors.New("task is too long")

	// ErrInvalidPriority は優先度がhigh/medium/low以外の場合に返されます。
	ErrInvalidPriority = errors.New("invalid priority value")

	// ErrDueDateRequired はToDoの期日が未設定の場合に返されます。
	ErrDueDateRequired = errors.New("due date is required")
)
