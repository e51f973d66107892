package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item 订单条目，价格/名称在提交时刻冻结，后续目录改价不回溯
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	ImageURL  string          `json:"imageUrl"`
}

// Request 提交给上游下单接口的请求体。由结算服务从购物车快照构建，
// 只在一次提交的生命周期内存在，不落盘。
type Request struct {
	Items           []Item          `json:"items"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	// IdempotencyKey 每次提交生成一次，配合上游去重
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// Order 上游确认后的订单。客户端视角下不可变：
// 状态流转由服务端持有，只能重新拉取，不在本地改写。
type Order struct {
	ID              string          `json:"id"`
	Status          string          `json:"status"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	ShippingAddress string          `json:"shippingAddress"`
	Items           []Item          `json:"items"`
}

// Receipt 下单成功后返回给视图层的回执
type Receipt struct {
	OrderID     string          `json:"orderId"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// ShippingInfo 结算表单数据。支付字段按原样透传，本服务不做支付处理。
type ShippingInfo struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Address       string `json:"address"`
	City          string `json:"city"`
	Country       string `json:"country"`
	ZipCode       string `json:"zipCode"`
	PaymentMethod string `json:"paymentMethod"`
}

// FormattedAddress 拼出上游需要的单段收货地址文本
func (s ShippingInfo) FormattedAddress() string {
	return s.FirstName + " " + s.LastName + "\n" +
		s.Address + "\n" +
		s.City + ", " + s.Country + " " + s.ZipCode
}

// PlacedEvent 下单成功事件，发布到 MQ 供 worker 消费
type PlacedEvent struct {
	OrderID     string          `json:"order_id"`
	UserID      string          `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	ItemCount   int             `json:"item_count"`
	PlacedAt    time.Time       `json:"placed_at"`
}
