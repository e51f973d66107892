package auth

import (
	"context"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/ahiagboo/internal/datamodels/session"
)

// redisTokenSlot 每个浏览会话一个可覆写的 token 槽位。
// 登录写入、登出/恢复失败删除，除会话服务外没有别的写入方。
type redisTokenSlot struct {
	redis radix.Client
	// ttlSeconds 槽位兜底过期时间，避免弃用会话永久占用 Redis
	ttlSeconds int64
}

// NewRedisTokenSlot 创建 Redis 槽位实现
func NewRedisTokenSlot(redis radix.Client, ttlSeconds int64) session.TokenSlot {
	if ttlSeconds <= 0 {
		ttlSeconds = 7 * 24 * 3600
	}
	return &redisTokenSlot{redis: redis, ttlSeconds: ttlSeconds}
}

func slotKey(sessionKey string) string {
	return "session:token:" + sessionKey
}

func (s *redisTokenSlot) Get(ctx context.Context, sessionKey string) (string, error) {
	var token string
	if err := s.redis.Do(radix.Cmd(&token, "GET", slotKey(sessionKey))); err != nil {
		return "", err
	}
	return token, nil
}

func (s *redisTokenSlot) Set(ctx context.Context, sessionKey, token string) error {
	return s.redis.Do(radix.FlatCmd(nil, "SETEX", slotKey(sessionKey), s.ttlSeconds, token))
}

func (s *redisTokenSlot) Delete(ctx context.Context, sessionKey string) error {
	return s.redis.Do(radix.Cmd(nil, "DEL", slotKey(sessionKey)))
}
