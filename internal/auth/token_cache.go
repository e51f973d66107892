package auth

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"time"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/ahiagboo/internal/datamodels/session"
)

// UserCache current-user 查询结果缓存：按 token 哈希落在 Redis，
// 路由守卫高频触发会话检查时避免每次都打上游接口。
type UserCache struct {
	redis radix.Client
	ttl   time.Duration
}

// NewUserCache 构建缓存器
func NewUserCache(redis radix.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &UserCache{redis: redis, ttl: ttl}
}

func userCacheKey(token string) string {
	sum := sha1.Sum([]byte(token))
	return "session:user:" + hex.EncodeToString(sum[:])
}

// Get 尝试命中缓存的用户
func (c *UserCache) Get(ctx context.Context, token string) (*session.User, bool, error) {
	if c.redis == nil {
		return nil, false, nil
	}
	var raw string
	if err := c.redis.Do(radix.Cmd(&raw, "GET", userCacheKey(token))); err != nil {
		return nil, false, err
	}
	if raw == "" {
		return nil, false, nil
	}
	var u session.User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		// 数据损坏，清理后走正常查询
		_ = c.redis.Do(radix.Cmd(nil, "DEL", userCacheKey(token)))
		return nil, false, nil
	}
	return &u, true, nil
}

// Set 缓存查询结果
func (c *UserCache) Set(ctx context.Context, token string, u *session.User) error {
	if c.redis == nil || u == nil {
		return nil
	}
	body, _ := json.Marshal(u)
	return c.redis.Do(radix.FlatCmd(nil, "SETEX", userCacheKey(token), int64(c.ttl/time.Second), body))
}

// Invalidate 登出/凭据失效时清掉缓存条目
func (c *UserCache) Invalidate(ctx context.Context, token string) error {
	if c.redis == nil || token == "" {
		return nil
	}
	return c.redis.Do(radix.Cmd(nil, "DEL", userCacheKey(token)))
}
