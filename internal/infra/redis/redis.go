package redis

import (
	"sync"

	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/ahiagboo/internal/config"
)

var (
	client  radix.Client
	initErr error
	once    sync.Once
)

// Init 初始化 Redis 连接池（token 槽位 / current-user 缓存 / 最近订单流水）
func Init(cfg *config.RedisConfig) (radix.Client, error) {
	once.Do(func() {
		size := cfg.PoolSize
		if size <= 0 {
			size = 10
		}
		client, initErr = radix.NewPool("tcp", cfg.Addr, size)
	})
	return client, initErr
}

// Client 获取 Redis 客户端
func Client() radix.Client {
	return client
}
