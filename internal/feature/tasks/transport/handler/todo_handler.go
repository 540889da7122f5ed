package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskbite_backend/internal/api"
	"taskbite_backend/internal/feature/tasks/domain/entity"
	"taskbite_backend/internal/feature/tasks/transport/http/dto"
	"taskbite_backend/internal/feature/tasks/usecase"
	jwtmw "taskbite_backend/internal/platform/jwt"
)

// TodoUsecase はToDo操作のユースケースを定義します。
type TodoUsecase interface {
	CreateTodo(ctx context.Context, userID uint, task string, priority entity.Priority, dueDate time.Time) (*entity.Todo, error)
	GetTodo(ctx context.Context, userID uint, id string) (*entity.Todo, error)
	ListTodos(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Todo, error)
	UpdateTodo(ctx context.Context, userID uint, id, task string, priority entity.Priority, dueDate time.Time) (*entity.Todo, error)
	SetComplete(ctx context.Context, userID uint, id string, done bool) (*entity.Todo, error)
	DeleteTodo(ctx context.Context, userID uint, id string) error
}

// TodoHandler はToDo操作のHTTPリクエストを処理します。
type TodoHandler struct {
	todos TodoUsecase
}

// NewTodoHandler はTodoHandlerの新しいインスタンスを生成します。
func NewTodoHandler(todos TodoUsecase) *TodoHandler {
	return &TodoHandler{todos: todos}
}

// Create はToDo作成APIエンドポイントを処理します。
func (h *TodoHandler) Create(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.CreateTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	todo, err := h.todos.CreateTodo(c.Request.Context(), userID, req.Task, entity.Priority(req.Priority), req.DueDate)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusCreated, dto.TodoResponseFromEntity(todo))
}

// Get はToDo取得APIエンドポイントを処理します。
// 他ユーザーのToDoは存在しないものとして404を返します。
func (h *TodoHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	todo, err := h.todos.GetTodo(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.TodoResponseFromEntity(todo))
}

// List はToDo一覧APIエンドポイントを処理します。
// from/toクエリパラメータ（YYYY-MM-DD）で期日を絞り込めます。
func (h *TodoHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid date format, expected YYYY-MM-DD"})
		return
	}

	todos, err := h.todos.ListTodos(c.Request.Context(), userID, from, to)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.TodoResponsesFromEntities(todos))
}

// Update はToDo更新APIエンドポイントを処理します。
func (h *TodoHandler) Update(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.UpdateTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	todo, err := h.todos.UpdateTodo(c.Request.Context(), userID, c.Param("id"), req.Task, entity.Priority(req.Priority), req.DueDate)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.TodoResponseFromEntity(todo))
}

// Complete は完了フラグ設定APIエンドポイントを処理します。
func (h *TodoHandler) Complete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.CompleteTodoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	todo, err := h.todos.SetComplete(c.Request.Context(), userID, c.Param("id"), *req.Done)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.TodoResponseFromEntity(todo))
}

// Delete はToDo削除APIエンドポイントを処理します。
func (h *TodoHandler) Delete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	if err := h.todos.DeleteTodo(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "to-do deleted successfully"})
}

// writeError はユースケースのエラーをHTTPレスポンスに変換します。
func (h *TodoHandler) writeError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrTodoNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "to-do not found"})
	case errors.Is(err, usecase.ErrTaskRequired),
		errors.Is(err, usecase.ErrTaskTooLong),
		errors.Is(err, usecase.ErrInvalidPriority),
		errors.Is(err, usecase.ErrDueDateRequired):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("todo operation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
