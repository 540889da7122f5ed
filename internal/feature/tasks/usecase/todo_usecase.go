package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskbite_backend/internal/feature/tasks/domain/entity"
)

// TodoRepository はToDoの永続化レイヤーを抽象化します。
type TodoRepository interface {
	Create(ctx context.Context, todo *entity.Todo) error
	// FindByID はToDoを検索します。見つからない場合はErrTodoNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Todo, error)
	// FindByUserID はユーザーのToDoを期日の昇順で返します。
	// from/toが指定された場合は期日で絞り込みます。
	FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) error
	Delete(ctx context.Context, id string) error
}

// todoUsecase はToDo操作のユースケースを定義します。
type todoUsecase struct {
	todos TodoRepository
	cache EventCacheInvalidator
}

// NewTodoUsecase はtodoUsecaseの新しいインスタンスを生成します。
// cacheはnilでもよく、その場合キャッシュ無効化は行いません。
func NewTodoUsecase(todos TodoRepository, cache EventCacheInvalidator) *todoUsecase {
	return &todoUsecase{todos: todos, cache: cache}
}

func (u *todoUsecase) invalidateCache(ctx context.Context, userID uint) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("failed to invalidate event cache", "error", err, "user_id", userID)
	}
}

func validateTodo(task string, priority entity.Priority, dueDate time.Time) error {
	if strings.TrimSpace(task) == "" {
		return ErrTaskRequired
	}
	if len(task) > entity.MaxTodoTaskLen {
		return ErrTaskTooLong
	}
	if !priority.IsValid() {
		return ErrInvalidPriority
	}
	if dueDate.IsZero() {
		return ErrDueDateRequired
	}
	return nil
}

// CreateTodo は新しいToDoを作成します。
func (u *todoUsecase) CreateTodo(ctx context.Context, userID uint, task string, priority entity.Priority, dueDate time.Time) (*entity.Todo, error) {
	if err := validateTodo(task, priority, dueDate); err != nil {
		return nil, err
	}

	now := time.Now()
	todo := &entity.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Task:      task,
		Priority:  priority,
		DueDate:   dueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.todos.Create(ctx, todo); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx, userID)
	return todo, nil
}

// GetTodo は呼び出し元が所有するToDoを取得します。
// 他ユーザーのToDoや存在しないIDはどちらもErrTodoNotFoundになります。
func (u *todoUsecase) GetTodo(ctx context.Context, userID uint, id string) (*entity.Todo, error) {
	todo, err := u.todos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if todo.UserID != userID {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// ListTodos は呼び出し元のToDoを取得します。from/toで期日を絞り込めます。
func (u *todoUsecase) ListTodos(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Todo, error) {
	return u.todos.FindByUserID(ctx, userID, from, to)
}

// UpdateTodo は呼び出し元が所有するToDoを更新します。
func (u *todoUsecase) UpdateTodo(ctx context.Context, userID uint, id, task string, priority entity.Priority, dueDate time.Time) (*entity.Todo, error) {
	if err := validateTodo(task, priority, dueDate); err != nil {
		return nil, err
	}

	todo, err := u.GetTodo(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Task = task
	todo.Priority = priority
	todo.DueDate = dueDate
	todo.UpdatedAt = time.Now()

	if err := u.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx, userID)
	return todo, nil
}

// SetComplete は呼び出し元が所有するToDoの完了フラグを設定します。
func (u *todoUsecase) SetComplete(ctx context.Context, userID uint, id string, done bool) (*entity.Todo, error) {
	todo, err := u.GetTodo(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	todo.Done = done
	todo.UpdatedAt = time.Now()

	if err := u.todos.Update(ctx, todo); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx, userID)
	return todo, nil
}

// DeleteTodo は呼び出し元が所有するToDoを削除します。
func (u *todoUsecase) DeleteTodo(ctx context.Context, userID uint, id string) error {
	if _, err := u.GetTodo(ctx, userID, id); err != nil {
		return err
	}

	if err := u.todos.Delete(ctx, id); err != nil {
		return err
	}

	u.invalidateCache(ctx, userID)
	return nil
}
