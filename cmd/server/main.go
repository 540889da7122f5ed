package main

import (
	"log"

	redisv9 "github.com/redis/go-redis/v9"

	"taskbite_backend/internal/app/di"
	"taskbite_backend/internal/app/router"
	authadapters "taskbite_backend/internal/feature/auth/adapters"
	authhandler "taskbite_backend/internal/feature/auth/transport/handler"
	authusecase "taskbite_backend/internal/feature/auth/usecase"
	dashhandler "taskbite_backend/internal/feature/dashboard/transport/handler"
	dashusecase "taskbite_backend/internal/feature/dashboard/usecase"
	taskadapters "taskbite_backend/internal/feature/tasks/adapters"
	taskhandler "taskbite_backend/internal/feature/tasks/transport/handler"
	taskusecase "taskbite_backend/internal/feature/tasks/usecase"
	"taskbite_backend/internal/platform/cache"
	"taskbite_backend/internal/platform/config"
	infradb "taskbite_backend/internal/platform/db"
	jwtmw "taskbite_backend/internal/platform/jwt"
	infraredis "taskbite_backend/internal/platform/redis"
	"taskbite_backend/internal/shared/ratelimiter"
)

func main() {
	cfg := config.Load()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Running without cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserPostgres(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	noteRepo := taskadapters.NewNoteRepository(db)
	todoRepo := taskadapters.NewTodoRepository(db)

	// カレンダーイベントをRedisキャッシュでラップ
	eventSource := dashusecase.NewEventSource(noteRepo, todoRepo)
	cachedEventRepo := cache.NewCachingEventRepository(rdb, 0, eventSource, "events")

	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.AccessTokenTTL)
	mailer := di.NewMailer(cfg)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, mailer, authusecase.Config{
		AccessTokenTTL:  cfg.AccessTokenTTL,
		RefreshTokenTTL: cfg.RefreshTokenTTL,
		ResetTokenTTL:   cfg.ResetTokenTTL,
	})
	noteUC := taskusecase.NewNoteUsecase(noteRepo, cachedEventRepo)
	todoUC := taskusecase.NewTodoUsecase(todoRepo, cachedEventRepo)
	dashUC := dashusecase.NewDashboardUsecase(noteRepo, todoRepo, cachedEventRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	noteH := taskhandler.NewNoteHandler(noteUC)
	todoH := taskhandler.NewTodoHandler(todoUC)
	dashH := dashhandler.NewDashboardHandler(dashUC)

	// ログインとパスワード再設定のレート制限
	var authLimiter ratelimiter.Limiter
	if rdb != nil {
		authLimiter = ratelimiter.NewRedisLimiter(rdb, "ratelimit:auth", cfg.AuthRateLimit, cfg.AuthRateWindow)
	} else {
		authLimiter = ratelimiter.NewMemoryLimiter(cfg.AuthRateLimit, cfg.AuthRateWindow)
	}

	// ルータ生成
	router := router.NewRouter(authH, noteH, todoH, dashH, authLimiter)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWTSecret == "" {
		log.Println("[WARN] JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(cfg.ServerAddr); err != nil {
		log.Fatal(err)
	}
}
