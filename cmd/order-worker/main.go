package main

import (
	"encoding/json"
	"flag"
	"log"
	"time"

	radix "github.com/mediocregopher/radix/v3"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/infra/mq"
	"github.com/example/ahiagboo/internal/infra/redis"
	"github.com/example/ahiagboo/internal/logging"
	"github.com/example/ahiagboo/internal/server"
	"github.com/example/ahiagboo/internal/service"
)

// recentOrdersLimit 最近订单流水保留条数
const recentOrdersLimit = 100

func main() {
	configPath := flag.String("config", "./config", "config directory")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(*debug); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	redisClient, err := redis.Init(&cfg.Redis)
	if err != nil {
		zap.L().Fatal("connect redis failed", zap.Error(err))
	}
	mqConn, err := mq.Init(&cfg.RabbitMQ)
	if err != nil {
		zap.L().Fatal("connect rabbitmq failed", zap.Error(err))
	}

	// 监控快照发到 Redis，管理端跨进程读取
	go service.GetMonitor().PublishLoop(redisClient, service.StatsProcWorker, 10*time.Second)

	ch, err := mqConn.Channel()
	if err != nil {
		zap.L().Fatal("open channel failed", zap.Error(err))
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(mq.OrderEventsQueue, true, false, false, false, nil); err != nil {
		zap.L().Fatal("declare queue failed", zap.Error(err))
	}

	// 手动确认模式（auto-ack=false）
	msgs, err := ch.Consume(mq.OrderEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		zap.L().Fatal("consume failed", zap.Error(err))
	}

	zap.L().Info("order worker started, waiting for events")

	for d := range msgs {
		var ev order.PlacedEvent
		if err := json.Unmarshal(d.Body, &ev); err != nil {
			zap.L().Warn("invalid event payload", zap.Error(err))
			// 格式错误的消息拒绝并丢弃
			_ = d.Nack(false, false)
			service.GetMonitor().RecordWorkerFailed()
			continue
		}
		handleEvent(redisClient, &ev, d)
	}
}

// handleEvent 把下单事件写入最近订单流水并记录指标。
// Redis 写失败时消息重新入队，等基础设施恢复后再消费。
func handleEvent(redisClient radix.Client, ev *order.PlacedEvent, d amqp.Delivery) {
	raw, err := json.Marshal(ev)
	if err != nil {
		_ = d.Nack(false, false)
		service.GetMonitor().RecordWorkerFailed()
		return
	}

	if err := redisClient.Do(radix.FlatCmd(nil, "LPUSH", server.RecentOrdersKey, raw)); err != nil {
		zap.L().Warn("push recent order failed", zap.Error(err))
		_ = d.Nack(false, true)
		service.GetMonitor().RecordWorkerFailed()
		return
	}
	_ = redisClient.Do(radix.FlatCmd(nil, "LTRIM", server.RecentOrdersKey, 0, recentOrdersLimit-1))

	zap.L().Info("order event recorded",
		zap.String("order_id", ev.OrderID),
		zap.String("user_id", ev.UserID),
		zap.Int("items", ev.ItemCount))
	service.GetMonitor().RecordWorkerProcessed()

	if err := d.Ack(false); err != nil {
		zap.L().Warn("ack failed", zap.Error(err))
	}
}
