package service

import (
	"encoding/json"
	"time"

	radix "github.com/mediocregopher/radix/v3"
	"go.uber.org/zap"
)

// 监控计数器是进程内状态，跨进程只能经 Redis 汇聚：
// 各进程把自己的快照写到独立的键，后台管理端读出来合并展示。
const (
	StatsProcWeb    = "web"
	StatsProcWorker = "worker"

	// statsTTLSeconds 快照过期时间。进程挂了快照跟着消失，
	// 管理端看到的永远是还活着的进程。
	statsTTLSeconds = 60
)

func statsKey(proc string) string {
	return "stats:" + proc
}

// Publish 把当前监控快照写入 Redis
func (m *Monitor) Publish(redisClient radix.Client, proc string) error {
	body, err := json.Marshal(m.GetStats())
	if err != nil {
		return err
	}
	return redisClient.Do(radix.FlatCmd(nil, "SETEX", statsKey(proc), statsTTLSeconds, body))
}

// PublishLoop 周期性发布监控快照，跑在独立 goroutine 里
func (m *Monitor) PublishLoop(redisClient radix.Client, proc string, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		if err := m.Publish(redisClient, proc); err != nil {
			zap.L().Warn("publish stats failed", zap.String("proc", proc), zap.Error(err))
		}
	}
}

// ReadStats 读取某个进程发布的监控快照，没有（或已过期）时返回 nil
func ReadStats(redisClient radix.Client, proc string) (map[string]interface{}, error) {
	var raw string
	if err := redisClient.Do(radix.Cmd(&raw, "GET", statsKey(proc))); err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var stats map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
