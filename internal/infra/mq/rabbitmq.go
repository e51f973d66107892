package mq

import (
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/example/ahiagboo/internal/config"
)

// OrderEventsQueue 下单成功事件队列
const OrderEventsQueue = "order_events"

var (
	conn    *amqp.Connection
	initErr error
	once    sync.Once
)

// Init 初始化 RabbitMQ 连接
func Init(cfg *config.RabbitMQConfig) (*amqp.Connection, error) {
	once.Do(func() {
		conn, initErr = amqp.Dial(cfg.URL)
	})
	return conn, initErr
}

// Conn 获取 MQ 连接
func Conn() *amqp.Connection {
	return conn
}
