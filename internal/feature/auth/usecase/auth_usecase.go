// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"taskbite_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength はパスワードの最低文字数を定義します。
	minPasswordLength = 8

	// maxSessionsPerUser は1ユーザーが同時に保持できるセッション数の上限です。
	// 上限を超えた場合、最も古いセッションが削除されます。
	maxSessionsPerUser = 5

	// PurposePasswordReset はパスワードリセットトークンのpurposeクレーム値です。
	PurposePasswordReset = "password_reset"

	// PurposeVerifyEmail はメールアドレス確認トークンのpurposeクレーム値です。
	PurposeVerifyEmail = "verify_email"

	// verifyTokenTTL はメール確認トークンの有効期間です。
	verifyTokenTTL = 24 * time.Hour
)

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスまたはユーザー名が既に存在する場合、エラーを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// Update は既存ユーザーの変更を永続化します。
	Update(ctx context.Context, user *entity.User) error

	// Delete はユーザーを論理削除します。
	Delete(ctx context.Context, id uint) error
}

// TokenIssuer はJWTトークンの発行と検証のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type TokenIssuer interface {
	// GenerateToken は指定されたユーザーの署名済みアクセストークンを生成します。
	GenerateToken(userID uint, email string) (string, error)

	// GeneratePurposeToken はリセット・確認用の用途限定トークンを生成します。
	GeneratePurposeToken(userID uint, purpose string, ttl time.Duration) (string, error)

	// ParsePurposeToken は用途限定トークンを検証し、対象ユーザーIDを返します。
	ParsePurposeToken(token, purpose string) (uint, error)
}

// Mailer はメール送信層を抽象化します。
// 送信失敗は呼び出し元でログに記録されるだけで、業務処理を失敗させません。
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// TokenPair はログイン・リフレッシュ成功時に返すトークンの組です。
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // アクセストークンの有効秒数
}

// Config はauthUsecaseの動作設定です。
type Config struct {
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	ResetTokenTTL   time.Duration
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
	tokens   TokenIssuer
	mailer   Mailer
	cfg      Config
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository, tokens TokenIssuer, mailer Mailer, cfg Config) *authUsecase {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = time.Hour
	}
	if cfg.RefreshTokenTTL <= 0 {
		cfg.RefreshTokenTTL = 30 * 24 * time.Hour
	}
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	return &authUsecase{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// validatePassword はパスワードがセキュリティ要件を満たしているかチェックします。
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、
// 確認メールを非同期で送信します。メール送信の失敗は登録を失敗させません。
func (u *authUsecase) Register(ctx context.Context, username, name, email, password string) error {
	// パスワード強度を検証
	if err := validatePassword(password); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Username: username,
		Name:     name,
		Email:    email,
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return err
	}

	u.sendVerificationMail(user)
	return nil
}

// sendVerificationMail はメール確認トークンを発行し、非同期で送信します。
func (u *authUsecase) sendVerificationMail(user *entity.User) {
	token, err := u.tokens.GeneratePurposeToken(user.ID, PurposeVerifyEmail, verifyTokenTTL)
	if err != nil {
		slog.Error("failed to generate verification token", "error", err, "user_id", user.ID)
		return
	}

	// リクエストのキャンセルに影響されないよう、送信はバックグラウンドで行う
	go func() {
		body := fmt.Sprintf("Welcome to TaskBite, %s!\n\nYour email verification token is: %s\n", user.Name, token)
		if err := u.mailer.Send(context.Background(), user.Email, "Verify your email", body); err != nil {
			slog.Warn("failed to send verification email", "error", err, "email", user.Email)
		}
	}()
}

// Login はユーザーを認証し、成功時にアクセストークンとリフレッシュトークンを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password, userAgent, ipAddress string) (*TokenPair, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokenPair(ctx, user, userAgent, ipAddress)
}

// issueTokenPair はアクセストークンとリフレッシュセッションを発行します。
// セッション数が上限を超えた場合、最も古いセッションを削除します。
func (u *authUsecase) issueTokenPair(ctx context.Context, user *entity.User, userAgent, ipAddress string) (*TokenPair, error) {
	access, err := u.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	if count, err := u.sessions.CountByUserID(ctx, user.ID); err == nil && count >= maxSessionsPerUser {
		if err := u.sessions.DeleteOldestByUserID(ctx, user.ID); err != nil {
			slog.Warn("failed to evict oldest session", "error", err, "user_id", user.ID)
		}
	}

	now := time.Now()
	session := &entity.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: now,
		ExpiresAt: now.Add(u.cfg.RefreshTokenTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &TokenPair{
		AccessToken:  access,
		RefreshToken: session.ID,
		ExpiresIn:    int64(u.cfg.AccessTokenTTL.Seconds()),
	}, nil
}

// Refresh はリフレッシュトークンを検証し、新しいトークンの組に交換します。
// 使用されたセッションは失効させ、新しいセッションを発行します（ローテーション）。
func (u *authUsecase) Refresh(ctx context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, error) {
	session, err := u.sessions.FindByID(ctx, refreshToken)
	if err != nil {
		return nil, ErrSessionNotFound
	}
	if session.IsRevoked() {
		return nil, ErrSessionRevoked
	}
	if session.IsExpired() {
		return nil, ErrSessionExpired
	}

	user, err := u.users.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	// 使用済みトークンを失効させてからローテーション
	if err := u.sessions.Revoke(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("failed to revoke session: %w", err)
	}

	return u.issueTokenPair(ctx, user, userAgent, ipAddress)
}

// Logout は指定されたリフレッシュトークンのセッションを失効させます。
func (u *authUsecase) Logout(ctx context.Context, refreshToken string) error {
	if err := u.sessions.Revoke(ctx, refreshToken); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ForgotPassword はパスワードリセットメールを発行します。
// アカウントの存在を漏らさないため、メールアドレスが未登録でも常にnilを返します。
func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		// 未登録のメールアドレスでも成功と同じ応答にする
		slog.Info("password reset requested for unknown email", "email", email)
		return nil
	}

	token, err := u.tokens.GeneratePurposeToken(user.ID, PurposePasswordReset, u.cfg.ResetTokenTTL)
	if err != nil {
		slog.Error("failed to generate reset token", "error", err, "user_id", user.ID)
		return nil
	}

	go func() {
		body := fmt.Sprintf("Your password reset token is: %s\n\nIt expires in %s.\n", token, u.cfg.ResetTokenTTL)
		if err := u.mailer.Send(context.Background(), user.Email, "Password Reset", body); err != nil {
			slog.Warn("failed to send password reset email", "error", err, "email", user.Email)
		}
	}()
	return nil
}

// ResetPassword はリセットトークンを検証し、パスワードを更新します。
// 更新後は既存の全セッションを失効させます。
func (u *authUsecase) ResetPassword(ctx context.Context, token, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	userID, err := u.tokens.ParsePurposeToken(token, PurposePasswordReset)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	// パスワード変更後は再ログインを必須にする
	if err := u.sessions.RevokeAllByUserID(ctx, user.ID); err != nil {
		slog.Warn("failed to revoke sessions after password reset", "error", err, "user_id", user.ID)
	}
	return nil
}

// VerifyEmail は確認トークンを検証し、ユーザーのメールアドレスを確認済みにします。
func (u *authUsecase) VerifyEmail(ctx context.Context, token string) error {
	userID, err := u.tokens.ParsePurposeToken(token, PurposeVerifyEmail)
	if err != nil {
		return ErrInvalidToken
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}
	if user.EmailVerified {
		return nil // 冪等
	}

	user.EmailVerified = true
	return u.users.Update(ctx, user)
}

// UpdateProfile はユーザーのプロフィール情報を更新します。
// メールアドレスが変更された場合、確認済みフラグをリセットし確認メールを再送します。
func (u *authUsecase) UpdateProfile(ctx context.Context, userID uint, username, name, email string) error {
	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return ErrUserNotFound
	}

	emailChanged := email != user.Email

	user.Username = username
	user.Name = name
	user.Email = email
	if emailChanged {
		user.EmailVerified = false
	}

	if err := u.users.Update(ctx, user); err != nil {
		return err
	}

	if emailChanged {
		u.sendVerificationMail(user)
	}
	return nil
}

// DeleteAccount はユーザーを論理削除し、全セッションを失効させます。
func (u *authUsecase) DeleteAccount(ctx context.Context, userID uint) error {
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return ErrUserNotFound
	}

	if err := u.sessions.RevokeAllByUserID(ctx, userID); err != nil {
		slog.Warn("failed to revoke sessions on account delete", "error", err, "user_id", userID)
	}
	return u.users.Delete(ctx, userID)
}
