package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/ahiagboo/internal/api"
	"github.com/example/ahiagboo/internal/datamodels/cart"
	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/datamodels/session"
)

// fakeOrderAPI 可编排的上游订单桩，createGate 用来卡住在途的提交
type fakeOrderAPI struct {
	mu sync.Mutex

	createErr     error
	createCalls   int
	lastReq       *order.Request
	createGate    chan struct{}
	createStarted chan struct{}

	getOrder *order.Order
	getErr   error
}

func (f *fakeOrderAPI) Create(_ context.Context, _ string, req *order.Request) (*order.Order, error) {
	f.mu.Lock()
	f.createCalls++
	f.lastReq = req
	gate, started := f.createGate, f.createStarted
	err := f.createErr
	f.mu.Unlock()

	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &order.Order{
		ID:          "ord-1",
		Status:      "confirmed",
		TotalAmount: req.TotalAmount,
		Items:       req.Items,
	}, nil
}

func (f *fakeOrderAPI) Get(_ context.Context, _ string, _ string) (*order.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOrder, nil
}

func (f *fakeOrderAPI) requests() (int, *order.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.createCalls, f.lastReq
}

func validShippingInfo() order.ShippingInfo {
	return order.ShippingInfo{
		FirstName: "Ada",
		LastName:  "Okafor",
		Email:     "ada@example.com",
		Address:   "12 Market Road",
		City:      "Onitsha",
		Country:   "Nigeria",
		ZipCode:   "430213",
	}
}

// checkoutFixture 组装一套已登录、购物车非空的测试场景
func checkoutFixture(t *testing.T, orders *fakeOrderAPI) (*CheckoutService, *CartService) {
	t.Helper()

	carts := NewCartService(10)
	carts.Add("s1", cart.Item{
		ProductID: 1,
		Name:      "carved stool",
		UnitPrice: decimal.RequireFromString("45.00"),
	}, 2)

	sessions := NewSessionService(&fakeAuthAPI{loginToken: "tok-1", loginUser: testUser}, newMemorySlot(), nil)
	_, err := sessions.Login(context.Background(), "s1", session.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	return NewCheckoutService(carts, sessions, orders, nil), carts
}

func TestSubmitOrderSuccessClearsCart(t *testing.T) {
	orders := &fakeOrderAPI{}
	svc, carts := checkoutFixture(t, orders)

	receipt, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())

	require.NoError(t, err)
	assert.Equal(t, "ord-1", receipt.OrderID)
	assert.Equal(t, "confirmed", receipt.Status)
	assert.Equal(t, "90", receipt.TotalAmount.String())
	assert.Empty(t, carts.Snapshot("s1").Items, "服务端确认后购物车应清空")

	_, req := orders.requests()
	require.NotNil(t, req)
	assert.NotEmpty(t, req.IdempotencyKey)
	assert.Equal(t, "credit_card", req.PaymentMethod)
	assert.Contains(t, req.ShippingAddress, "Ada Okafor")
}

func TestSubmitOrderFailureKeepsCart(t *testing.T) {
	orders := &fakeOrderAPI{createErr: &api.Error{Status: 502, Message: "payment gateway down"}}
	svc, carts := checkoutFixture(t, orders)
	before := carts.Snapshot("s1")

	receipt, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())

	require.Error(t, err)
	assert.Nil(t, receipt)
	// 失败时购物车原样保留，等用户自己决定是否重试
	after := carts.Snapshot("s1")
	assert.Equal(t, before.Items, after.Items)
	assert.True(t, before.Total.Equal(after.Total))

	// 落定之后允许再次提交
	orders.mu.Lock()
	orders.createErr = nil
	orders.mu.Unlock()
	_, err = svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
	require.NoError(t, err)
	calls, _ := orders.requests()
	assert.Equal(t, 2, calls)
}

func TestSubmitOrderConcurrentConflict(t *testing.T) {
	orders := &fakeOrderAPI{
		createGate:    make(chan struct{}),
		createStarted: make(chan struct{}, 1),
	}
	svc, _ := checkoutFixture(t, orders)

	done := make(chan error, 1)
	go func() {
		_, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
		done <- err
	}()
	<-orders.createStarted

	// 第一笔还在途，第二次提交立即被拒，不排队也不发请求
	_, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	assert.Equal(t, KindConflict, Classify(err))

	close(orders.createGate)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("first submission did not settle")
	}
	calls, _ := orders.requests()
	assert.Equal(t, 1, calls)
}

func TestSubmitOrderValidatesBeforeNetwork(t *testing.T) {
	t.Run("未登录", func(t *testing.T) {
		orders := &fakeOrderAPI{}
		carts := NewCartService(10)
		carts.Add("s1", cart.Item{ProductID: 1, UnitPrice: decimal.RequireFromString("5.00")}, 1)
		sessions := NewSessionService(&fakeAuthAPI{}, newMemorySlot(), nil)
		svc := NewCheckoutService(carts, sessions, orders, nil)

		_, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
		require.ErrorIs(t, err, ErrNotAuthenticated)
	})

	t.Run("空购物车", func(t *testing.T) {
		orders := &fakeOrderAPI{}
		svc, carts := checkoutFixture(t, orders)
		carts.Clear("s1")

		_, err := svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
		require.ErrorIs(t, err, ErrEmptyCart)
	})

	t.Run("收货信息缺字段", func(t *testing.T) {
		orders := &fakeOrderAPI{}
		svc, _ := checkoutFixture(t, orders)
		shipping := validShippingInfo()
		shipping.ZipCode = "   "

		_, err := svc.SubmitOrder(context.Background(), "s1", shipping)
		require.ErrorIs(t, err, ErrInvalidShipping)
	})

	// 三类校验失败都不应触达上游
	calls := func(o *fakeOrderAPI) int { n, _ := o.requests(); return n }
	orders := &fakeOrderAPI{}
	svc, carts := checkoutFixture(t, orders)
	carts.Clear("s1")
	_, _ = svc.SubmitOrder(context.Background(), "s1", validShippingInfo())
	assert.Zero(t, calls(orders))
}

func TestGetOrderRequiresAuthentication(t *testing.T) {
	orders := &fakeOrderAPI{getOrder: &order.Order{ID: "ord-1", Status: "shipped"}}
	carts := NewCartService(10)
	sessions := NewSessionService(&fakeAuthAPI{loginToken: "tok-1", loginUser: testUser}, newMemorySlot(), nil)
	svc := NewCheckoutService(carts, sessions, orders, nil)

	sessions.EnsureRestored(context.Background(), "s1")
	_, err := svc.GetOrder(context.Background(), "s1", "ord-1")
	require.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = sessions.Login(context.Background(), "s1", session.Credentials{Email: "a@b.c", Password: "pw"})
	require.NoError(t, err)

	o, err := svc.GetOrder(context.Background(), "s1", "ord-1")
	require.NoError(t, err)
	assert.Equal(t, "shipped", o.Status)
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindValidation, Classify(ErrEmptyCart))
	assert.Equal(t, KindValidation, Classify(ErrInvalidShipping))
	assert.Equal(t, KindAuth, Classify(ErrNotAuthenticated))
	assert.Equal(t, KindConflict, Classify(ErrSubmissionInFlight))
	assert.Equal(t, KindAuth, Classify(&api.Error{Status: 401, Message: "nope"}))
	assert.Equal(t, KindValidation, Classify(&api.Error{Status: 422, Message: "bad qty"}))
	assert.Equal(t, KindUpstream, Classify(&api.Error{Status: 503, Message: "down"}))
	assert.Equal(t, KindNetwork, Classify(errors.New("dial tcp: timeout")))
}
