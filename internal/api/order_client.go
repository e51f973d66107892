package api

import (
	"context"
	"net/http"
	"time"

	"github.com/example/ahiagboo/internal/datamodels/order"
)

// OrderClient 调用外部商城的下单接口
type OrderClient struct {
	client
}

// NewOrderClient 创建订单客户端
func NewOrderClient(baseURL string, timeout time.Duration) *OrderClient {
	return &OrderClient{client: newClient(baseURL, timeout)}
}

// Create 提交订单请求，成功时返回服务端确认的订单
func (c *OrderClient) Create(ctx context.Context, token string, req *order.Request) (*order.Order, error) {
	var o order.Order
	if err := c.doJSON(ctx, http.MethodPost, "/orders", token, req, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Get 按 ID 重新拉取订单。订单状态由服务端持有，确认页每次重查。
func (c *OrderClient) Get(ctx context.Context, token, id string) (*order.Order, error) {
	var o order.Order
	if err := c.doJSON(ctx, http.MethodGet, "/orders/"+id, token, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}
