package middleware

import (
	"sync"
	"time"

	"github.com/kataras/iris/v12"
)

// TokenBucket 令牌桶限流器
type TokenBucket struct {
	capacity   int64
	tokens     int64
	refillRate int64 // 每秒补充的令牌数
	lastRefill time.Time
	mu         sync.Mutex
}

// NewTokenBucket 创建令牌桶
func NewTokenBucket(capacity, refillRate int64) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: time.Now(),
	}
}

// Allow 检查是否允许请求
func (tb *TokenBucket) Allow() bool {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int64(elapsed.Seconds()) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens = tb.tokens + tokensToAdd
		if tb.tokens > tb.capacity {
			tb.tokens = tb.capacity
		}
		tb.lastRefill = now
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true
	}
	return false
}

// SessionLimiter 按浏览会话各自一个令牌桶，防止单个客户端刷结算接口
type SessionLimiter struct {
	mu         sync.Mutex
	capacity   int64
	refillRate int64
	buckets    map[string]*TokenBucket
}

// NewSessionLimiter 创建会话级限流器
func NewSessionLimiter(capacity, refillRate int64) *SessionLimiter {
	if capacity <= 0 {
		capacity = 10
	}
	if refillRate <= 0 {
		refillRate = 5
	}
	return &SessionLimiter{
		capacity:   capacity,
		refillRate: refillRate,
		buckets:    make(map[string]*TokenBucket),
	}
}

// Allow 指定会话是否放行
func (l *SessionLimiter) Allow(sessionKey string) bool {
	l.mu.Lock()
	bucket, ok := l.buckets[sessionKey]
	if !ok {
		bucket = NewTokenBucket(l.capacity, l.refillRate)
		l.buckets[sessionKey] = bucket
	}
	l.mu.Unlock()
	return bucket.Allow()
}

// Drop 会话结束时释放对应的桶
func (l *SessionLimiter) Drop(sessionKey string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.buckets, sessionKey)
}

// CheckoutRateLimit 结算接口限流中间件。keyFn 从请求上下文取浏览会话标识。
func CheckoutRateLimit(limiter *SessionLimiter, keyFn func(ctx iris.Context) string) iris.Handler {
	return func(ctx iris.Context) {
		if !limiter.Allow(keyFn(ctx)) {
			ctx.StopWithJSON(429, iris.Map{
				"code": 429,
				"msg":  "too many checkout attempts, slow down",
			})
			return
		}
		ctx.Next()
	}
}
