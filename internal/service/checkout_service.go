package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/datamodels/session"
	"github.com/example/ahiagboo/internal/infra/mq"
)

// OrderAPI 外部下单接口
type OrderAPI interface {
	Create(ctx context.Context, token string, req *order.Request) (*order.Order, error)
	Get(ctx context.Context, token, id string) (*order.Order, error)
}

// CheckoutService 结算协调器：校验购物车与会话快照、调用上游下单接口、
// 只有在服务端确认之后才清空购物车。自身不持有订单状态，
// 唯一的自有状态是"提交在途"标记。
type CheckoutService struct {
	mu       sync.Mutex
	inflight map[string]struct{}

	carts    *CartService
	sessions *SessionService
	orders   OrderAPI
	mqConn   *amqp.Connection
}

// NewCheckoutService 创建结算服务。mqConn 可以为 nil（不发布事件）。
func NewCheckoutService(carts *CartService, sessions *SessionService, orders OrderAPI, mqConn *amqp.Connection) *CheckoutService {
	return &CheckoutService{
		inflight: make(map[string]struct{}),
		carts:    carts,
		sessions: sessions,
		orders:   orders,
		mqConn:   mqConn,
	}
}

// SubmitOrder 提交订单。
// 同一会话在上一笔提交落定（成功或失败）之前重复调用，立即返回冲突错误，
// 防止连点/重复渲染造成重复下单。失败时购物车保持原样，错误交给调用方展示，
// 不做自动重试——重试永远是用户主动发起的动作。
func (s *CheckoutService) SubmitOrder(ctx context.Context, sessionKey string, shipping order.ShippingInfo) (*order.Receipt, error) {
	GetMonitor().RecordCheckoutRequest()

	s.mu.Lock()
	if _, busy := s.inflight[sessionKey]; busy {
		s.mu.Unlock()
		GetMonitor().RecordCheckoutConflict()
		return nil, ErrSubmissionInFlight
	}
	s.inflight[sessionKey] = struct{}{}
	s.mu.Unlock()

	// 在途标记只在网络交换落定后清除
	defer func() {
		s.mu.Lock()
		delete(s.inflight, sessionKey)
		s.mu.Unlock()
	}()

	sess := s.sessions.Current(sessionKey)
	if sess.Phase != session.PhaseAuthenticated {
		GetMonitor().RecordCheckoutFailure()
		return nil, ErrNotAuthenticated
	}

	snap := s.carts.Snapshot(sessionKey)
	if len(snap.Items) == 0 {
		GetMonitor().RecordCheckoutFailure()
		return nil, ErrEmptyCart
	}

	if !validShipping(shipping) {
		GetMonitor().RecordCheckoutFailure()
		return nil, ErrInvalidShipping
	}

	req := buildRequest(snap, shipping)
	o, err := s.orders.Create(ctx, sess.Token, req)
	if err != nil {
		// 购物车原样保留
		GetMonitor().RecordCheckoutFailure()
		return nil, err
	}

	// 清空严格排在服务端确认之后，绝不提前
	s.carts.Clear(sessionKey)
	GetMonitor().RecordCheckoutSuccess()

	s.publishPlaced(ctx, sess, o)

	return &order.Receipt{
		OrderID:     o.ID,
		Status:      o.Status,
		TotalAmount: o.TotalAmount,
	}, nil
}

// GetOrder 重新拉取订单（确认页用），状态以服务端为准
func (s *CheckoutService) GetOrder(ctx context.Context, sessionKey, orderID string) (*order.Order, error) {
	sess := s.sessions.Current(sessionKey)
	if sess.Phase != session.PhaseAuthenticated {
		return nil, ErrNotAuthenticated
	}
	return s.orders.Get(ctx, sess.Token, orderID)
}

// buildRequest 从购物车快照冻结条目构建一次性的下单请求
func buildRequest(snap CartSnapshot, shipping order.ShippingInfo) *order.Request {
	items := make([]order.Item, 0, len(snap.Items))
	for _, it := range snap.Items {
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      it.Name,
			UnitPrice: it.UnitPrice,
			Quantity:  it.Quantity,
			ImageURL:  it.ImageURL,
		})
	}
	method := shipping.PaymentMethod
	if method == "" {
		method = "credit_card"
	}
	return &order.Request{
		Items:           items,
		TotalAmount:     snap.Total,
		ShippingAddress: shipping.FormattedAddress(),
		PaymentMethod:   method,
		IdempotencyKey:  uuid.NewString(),
	}
}

func validShipping(s order.ShippingInfo) bool {
	for _, field := range []string{s.FirstName, s.LastName, s.Email, s.Address, s.City, s.Country, s.ZipCode} {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

// publishPlaced 发布下单成功事件，失败只记日志不影响结算结果
func (s *CheckoutService) publishPlaced(ctx context.Context, sess session.Session, o *order.Order) {
	if s.mqConn == nil {
		return
	}
	ch, err := s.mqConn.Channel()
	if err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("open mq channel failed", zap.Error(err))
		return
	}
	defer ch.Close()

	if _, err = ch.QueueDeclare(mq.OrderEventsQueue, true, false, false, false, nil); err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("declare order events queue failed", zap.Error(err))
		return
	}

	userID := ""
	if sess.User != nil {
		userID = sess.User.ID
	}
	body, err := json.Marshal(&order.PlacedEvent{
		OrderID:     o.ID,
		UserID:      userID,
		TotalAmount: o.TotalAmount,
		ItemCount:   len(o.Items),
		PlacedAt:    time.Now(),
	})
	if err != nil {
		return
	}

	err = ch.PublishWithContext(
		ctx,
		"",
		mq.OrderEventsQueue,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
	if err != nil {
		GetMonitor().RecordMQError()
		zap.L().Warn("publish order placed event failed", zap.Error(err))
		return
	}
	GetMonitor().RecordEventPublished()
}
