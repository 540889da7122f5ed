package ratelimiter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter は、認証エンドポイントなどの操作の頻度を制限するインターフェースです。
// Allowは固定ウィンドウ内の呼び出し回数が上限以内であればtrueを返します。
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RedisLimiter はRedisのINCR+EXPIREによる固定ウィンドウのレートリミッターです。
// 複数インスタンスで動作してもカウントを共有できます。
type RedisLimiter struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

// NewRedisLimiter は新しいRedisLimiterのインスタンスを生成します。
func NewRedisLimiter(client *redis.Client, prefix string, limit int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

func (rl *RedisLimiter) windowKey(key string) string {
	// ウィンドウ開始時刻をキーに含めることで期限切れカウントを自然に捨てる
	secs := int64(rl.window.Seconds())
	if secs < 1 {
		// 1秒未満のウィンドウでもゼロ除算しないよう1秒に切り上げる
		secs = 1
	}
	bucket := time.Now().Unix() / secs
	return fmt.Sprintf("%s:%s:%d", rl.prefix, key, bucket)
}

// Allow はウィンドウ内のカウントをインクリメントし、上限以内かを返します。
func (rl *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rl.windowKey(key)

	count, err := rl.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// 最初のヒットでのみTTLを設定する
		if err := rl.client.Expire(ctx, k, rl.window).Err(); err != nil {
			return false, err
		}
	}

	return count <= int64(rl.limit), nil
}

// MemoryLimiter は単一プロセス用の固定ウィンドウのレートリミッターです。
// Redisが利用できない開発環境で使用します。
type MemoryLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration

	counts map[string]*windowCount
}

type windowCount struct {
	count   int
	resetAt time.Time
}

// NewMemoryLimiter は新しいMemoryLimiterのインスタンスを生成します。
func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

// Allow はウィンドウ内のカウントをインクリメントし、上限以内かを返します。
func (ml *MemoryLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ml.mu.Lock()
	defer ml.mu.Unlock()

	now := time.Now()

	wc, ok := ml.counts[key]
	if !ok || now.After(wc.resetAt) {
		wc = &windowCount{resetAt: now.Add(ml.window)}
		ml.counts[key] = wc
	}

	wc.count++

	// ついでに期限切れのエントリを掃除する
	for k, v := range ml.counts {
		if now.After(v.resetAt) {
			delete(ml.counts, k)
		}
	}

	return wc.count <= ml.limit, nil
}
