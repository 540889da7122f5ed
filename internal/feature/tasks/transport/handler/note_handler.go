// Package handler はtasksフィーチャーのHTTPハンドラーを提供します。
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

// dateLayout はfrom/toクエリパラメータの日付形式です。
const dateLayout = "2006-01-02"

// NoteUsecase はノート操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはコンシューマー（handler）側で定義します。
type NoteUsecase interface {
	CreateNote(ctx context.Context, userID uint, content string) (*entity.Note, error)
	GetNote(ctx context.Context, userID uint, id string) (*entity.Note, error)
	ListNotes(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Note, error)
	UpdateNote(ctx context.Context, userID uint, id, content string) (*entity.Note, error)
	DeleteNote(ctx context.Context, userID uint, id string) error
}

// NoteHandler はノート操作のHTTPリクエストを処理します。
type NoteHandler struct {
	notes NoteUsecase
}

// NewNoteHandler はNoteHandlerの新しいインスタンスを生成します。
func NewNoteHandler(notes NoteUsecase) *NoteHandler {
	return &NoteHandler{notes: notes}
}

// parseDateRange はfrom/toクエリパラメータを解釈します。
// toは指定日を含む範囲（その日の終わりまで）として扱います。
func parseDateRange(c *gin.Context) (from, to *time.Time, err error) {
	if s := c.Query("from"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, perr
		}
		from = &t
	}
	if s := c.Query("to"); s != "" {
		t, perr := time.Parse(dateLayout, s)
		if perr != nil {
			return nil, nil, perr
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	return from, to, nil
}

// Create はノート作成APIエンドポイントを処理します。
func (h *NoteHandler) Create(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.CreateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	note, err := h.notes.CreateNote(c.Request.Context(), userID, req.Content)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusCreated, dto.NoteResponseFromEntity(note))
}

// Get はノート取得APIエンドポイントを処理します。
// 他ユーザーのノートは存在しないものとして404を返します。
func (h *NoteHandler) Get(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	note, err := h.notes.GetNote(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NoteResponseFromEntity(note))
}

// List はノート一覧APIエンドポイントを処理します。
// from/toクエリパラメータ（YYYY-MM-DD）で作成日を絞り込めます。
func (h *NoteHandler) List(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid date format, expected YYYY-MM-DD"})
		return
	}

	notes, err := h.notes.ListNotes(c.Request.Context(), userID, from, to)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NoteResponsesFromEntities(notes))
}

// Update はノート更新APIエンドポイントを処理します。
func (h *NoteHandler) Update(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	var req dto.UpdateNoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	note, err := h.notes.UpdateNote(c.Request.Context(), userID, c.Param("id"), req.Content)
	if err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, dto.NoteResponseFromEntity(note))
}

// Delete はノート削除APIエンドポイントを処理します。
func (h *NoteHandler) Delete(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	if err := h.notes.DeleteNote(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeError(c, err, userID)
		return
	}
	c.JSON(http.StatusOK, api.MessageResponse{Message: "note deleted successfully"})
}

// writeError はユースケースのエラーをHTTPレスポンスに変換します。
func (h *NoteHandler) writeError(c *gin.Context, err error, userID uint) {
	switch {
	case errors.Is(err, usecase.ErrNoteNotFound):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "note not found"})
	case errors.Is(err, usecase.ErrContentRequired), errors.Is(err, usecase.ErrContentTooLong):
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
	default:
		slog.Error("note operation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
	}
}
