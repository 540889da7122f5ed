// Package handler はdashboardフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskbite_backend/internal/api"
	"taskbite_backend/internal/feature/dashboard/usecase"
	jwtmw "taskbite_backend/internal/platform/jwt"
)

// DashboardUsecase はダッシュボード操作のユースケースを定義します。
type DashboardUsecase interface {
	GetDashboard(ctx context.Context, userID uint) (*usecase.DashboardData, error)
	GetEvents(ctx context.Context, userID uint) ([]usecase.Event, error)
}

// DashboardHandler はダッシュボード操作のHTTPリクエストを処理します。
type DashboardHandler struct {
	dashboard DashboardUsecase
}

// NewDashboardHandler はDashboardHandlerの新しいインスタンスを生成します。
func NewDashboardHandler(dashboard DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Dashboard はダッシュボード取得APIエンドポイントを処理します。
// ユーザーのノート・ToDoと日付別のカレンダーデータを返します。
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	data, err := h.dashboard.GetDashboard(c.Request.Context(), userID)
	if err != nil {
		slog.Error("dashboard fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Welcome to your dashboard",
		"notes":         data.Notes,
		"todos":         data.Todos,
		"calendar_data": data.CalendarData,
	})
}

// Events はカレンダーイベント取得APIエンドポイントを処理します。
func (h *DashboardHandler) Events(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)

	events, err := h.dashboard.GetEvents(c.Request.Context(), userID)
	if err != nil {
		slog.Error("events fetch failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "internal error"})
		return
	}

	c.JSON(http.StatusOK, events)
}
