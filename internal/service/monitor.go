package service

import (
	"sync"
	"time"
)

// Monitor 进程内运行指标，后台管理端经 /api/stats 读取
type Monitor struct {
	mu sync.RWMutex

	// 结算
	CheckoutRequests  int64
	CheckoutSuccess   int64
	CheckoutFailures  int64
	CheckoutConflicts int64

	// 会话
	LoginSuccess     int64
	LoginFailures    int64
	RestoreDiscarded int64

	// 基础设施
	MQErrors        int64
	EventsPublished int64
	WorkerProcessed int64
	WorkerFailed    int64

	LastCheckoutTime time.Time
	LastMQError      time.Time
	LastWorkerTime   time.Time
}

var globalMonitor = &Monitor{}

// GetMonitor 获取全局监控实例
func GetMonitor() *Monitor {
	return globalMonitor
}

func (m *Monitor) RecordCheckoutRequest() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutRequests++
	m.LastCheckoutTime = time.Now()
}

func (m *Monitor) RecordCheckoutSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutSuccess++
}

func (m *Monitor) RecordCheckoutFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutFailures++
}

func (m *Monitor) RecordCheckoutConflict() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutConflicts++
}

func (m *Monitor) RecordLoginSuccess() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginSuccess++
}

func (m *Monitor) RecordLoginFailure() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LoginFailures++
}

// RecordRestoreDiscarded 统计被丢弃的过期恢复结果（和显式登录/登出赛跑输了的那些）
func (m *Monitor) RecordRestoreDiscarded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RestoreDiscarded++
}

func (m *Monitor) RecordMQError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MQErrors++
	m.LastMQError = time.Now()
}

func (m *Monitor) RecordEventPublished() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EventsPublished++
}

func (m *Monitor) RecordWorkerProcessed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerProcessed++
	m.LastWorkerTime = time.Now()
}

func (m *Monitor) RecordWorkerFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.WorkerFailed++
}

// GetStats 获取统计信息
func (m *Monitor) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	successRate := float64(0)
	if m.CheckoutRequests > 0 {
		successRate = float64(m.CheckoutSuccess) / float64(m.CheckoutRequests) * 100
	}

	return map[string]interface{}{
		"checkout": map[string]interface{}{
			"requests":     m.CheckoutRequests,
			"success":      m.CheckoutSuccess,
			"failures":     m.CheckoutFailures,
			"conflicts":    m.CheckoutConflicts,
			"success_rate": successRate,
		},
		"session": map[string]interface{}{
			"login_success":     m.LoginSuccess,
			"login_failures":    m.LoginFailures,
			"restore_discarded": m.RestoreDiscarded,
		},
		"infra": map[string]interface{}{
			"mq_errors":        m.MQErrors,
			"events_published": m.EventsPublished,
			"worker_processed": m.WorkerProcessed,
			"worker_failed":    m.WorkerFailed,
		},
		"last_events": map[string]interface{}{
			"checkout": m.LastCheckoutTime,
			"mq_error": m.LastMQError,
			"worker":   m.LastWorkerTime,
		},
	}
}

// Reset 重置统计（测试用）
func (m *Monitor) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CheckoutRequests = 0
	m.CheckoutSuccess = 0
	m.CheckoutFailures = 0
	m.CheckoutConflicts = 0
	m.LoginSuccess = 0
	m.LoginFailures = 0
	m.RestoreDiscarded = 0
	m.MQErrors = 0
	m.EventsPublished = 0
	m.WorkerProcessed = 0
	m.WorkerFailed = 0
}
