// Package usecase はノート・ToDo操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"taskbite_backend/internal/feature/tasks/domain/entity"
)

// NoteRepository はノートの永続化レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type NoteRepository interface {
	Create(ctx context.Context, note *entity.Note) error
	// FindByID はノートを検索します。見つからない場合はErrNoteNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Note, error)
	// FindByUserID はユーザーのノートを作成日時の降順で返します。
	// from/toが指定された場合は作成日時で絞り込みます。
	FindByUserID(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Note, error)
	Update(ctx context.Context, note *entity.Note) error
	Delete(ctx context.Context, id string) error
}

// EventCacheInvalidator はユーザーのカレンダーイベントキャッシュを無効化します。
// 書き込み系の操作が成功したあとに呼び出されます。
type EventCacheInvalidator interface {
	InvalidateUser(ctx context.Context, userID uint) error
}

// noteUsecase はノート操作のユースケースを定義します。
type noteUsecase struct {
	notes NoteRepository
	cache EventCacheInvalidator
}

// NewNoteUsecase はnoteUsecaseの新しいインスタンスを生成します。
// cacheはnilでもよく、その場合キャッシュ無効化は行いません。
func NewNoteUsecase(notes NoteRepository, cache EventCacheInvalidator) *noteUsecase {
	return &noteUsecase{notes: notes, cache: cache}
}

// invalidateCache はベストエフォートでキャッシュを無効化します。
// キャッシュ層の障害は業務処理を失敗させず、ログに残すだけにします。
func (u *noteUsecase) invalidateCache(ctx context.Context, userID uint) {
	if u.cache == nil {
		return
	}
	if err := u.cache.InvalidateUser(ctx, userID); err != nil {
		slog.Warn("failed to invalidate event cache", "error", err, "user_id", userID)
	}
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrContentRequired
	}
	if len(content) > entity.MaxNoteContentLen {
		return ErrContentTooLong
	}
	return nil
}

// CreateNote は新しいノートを作成します。
func (u *noteUsecase) CreateNote(ctx context.Context, userID uint, content string) (*entity.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	now := time.Now()
	note := &entity.Note{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := u.notes.Create(ctx, note); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx, userID)
	return note, nil
}

// GetNote は呼び出し元が所有するノートを取得します。
// 他ユーザーのノートや存在しないIDはどちらもErrNoteNotFoundになります。
func (u *noteUsecase) GetNote(ctx context.Context, userID uint, id string) (*entity.Note, error) {
	note, err := u.notes.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.UserID != userID {
		return nil, ErrNoteNotFound
	}
	return note, nil
}

// ListNotes は呼び出し元のノートを取得します。from/toで作成日時を絞り込めます。
func (u *noteUsecase) ListNotes(ctx context.Context, userID uint, from, to *time.Time) ([]entity.Note, error) {
	return u.notes.FindByUserID(ctx, userID, from, to)
}

// UpdateNote は呼び出し元が所有するノートの本文を更新します。
func (u *noteUsecase) UpdateNote(ctx context.Context, userID uint, id, content string) (*entity.Note, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note, err := u.GetNote(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	note.Content = content
	note.UpdatedAt = time.Now()

	if err := u.notes.Update(ctx, note); err != nil {
		return nil, err
	}

	u.invalidateCache(ctx, userID)
	return note, nil
}

// DeleteNote は呼び出し元が所有するノートを削除します。
func (u *noteUsecase) DeleteNote(ctx context.Context, userID uint, id string) error {
	if _, err := u.GetNote(ctx, userID, id); err != nil {
		return err
	}

	if err := u.notes.Delete(ctx, id); err != nil {
		return err
	}

	u.invalidateCache(ctx, userID)
	return nil
}
