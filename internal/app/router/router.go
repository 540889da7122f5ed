package router

import (
	authhandler "taskbite_backend/internal/feature/auth/transport/handler"
	dashhandler "taskbite_backend/internal/feature/dashboard/transport/handler"
	taskhandler "taskbite_backend/internal/feature/tasks/transport/handler"
	"taskbite_backend/internal/platform/http/handler"
	jwtmw "taskbite_backend/internal/platform/jwt"
	"taskbite_backend/internal/shared/ratelimiter"

	"github.com/gin-gonic/gin"
)

func NewRouter(auth *authhandler.AuthHandler, notes *taskhandler.NoteHandler,
	todos *taskhandler.TodoHandler, dashboard *dashhandler.DashboardHandler,
	authLimiter ratelimiter.Limiter) *gin.Engine {
	r := gin.Default()

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)

	// 資格情報を受け取るエンドポイントは IP ごとにレート制限する
	limited := ratelimiter.Middleware(authLimiter)

	pub := r.Group("/api/auth")
	{
		// 新規ユーザー登録
		pub.POST("/register", auth.Register)
		// ログイン（JWT 発行）
		pub.POST("/login", limited, auth.Login)
		// リフレッシュトークンでアクセストークンを再発行
		pub.POST("/refresh", auth.Refresh)
		// パスワード再設定メールの送信
		pub.POST("/forgot-password", limited, auth.ForgotPassword)
		// リセットトークンでパスワードを更新
		pub.POST("/reset-password", auth.ResetPassword)
		// メールアドレス確認リンク
		pub.GET("/verify-email", auth.VerifyEmail)
	}

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	api := r.Group("/api")
	api.Use(jwtmw.AuthRequired())
	{
		api.POST("/auth/logout", auth.Logout)
		api.PUT("/auth/me", auth.UpdateMe)
		api.DELETE("/auth/me", auth.DeleteMe)

		api.POST("/notes", notes.Create)
		api.GET("/notes", notes.List)
		api.GET("/notes/:id", notes.Get)
		api.PUT("/notes/:id", notes.Update)
		api.DELETE("/notes/:id", notes.Delete)

		api.POST("/todos", todos.Create)
		api.GET("/todos", todos.List)
		api.GET("/todos/:id", todos.Get)
		api.PUT("/todos/:id", todos.Update)
		api.PATCH("/todos/:id/complete", todos.Complete)
		api.DELETE("/todos/:id", todos.Delete)

		api.GET("/dashboard", dashboard.Dashboard)
		api.GET("/calendar/events", dashboard.Events)
	}

	return r
}
