package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/example/ahiagboo/internal/datamodels/cart"
)

// CartSnapshot 某一时刻的购物车视图，条目与合计一致
type CartSnapshot struct {
	Items []cart.Item     `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// CartService 按浏览会话维护各自的购物车。
// 购物车只活在内存里：条目不跨进程存活是有意为之，
// 结算语义依赖条目不超出一次浏览会话的生命周期。
type CartService struct {
	mu         sync.Mutex
	maxPerItem int
	carts      map[string]*cart.Cart
}

// NewCartService 创建购物车服务，maxPerItem 为单商品数量上限
func NewCartService(maxPerItem int) *CartService {
	return &CartService{
		maxPerItem: maxPerItem,
		carts:      make(map[string]*cart.Cart),
	}
}

func (s *CartService) cartLocked(sessionKey string) *cart.Cart {
	c, ok := s.carts[sessionKey]
	if !ok {
		c = cart.New(s.maxPerItem)
		s.carts[sessionKey] = c
	}
	return c
}

// Add 加入商品（合并数量并按上限截断）
func (s *CartService) Add(sessionKey string, item cart.Item, qty int) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionKey)
	c.Add(item, qty)
	return snapshotLocked(c)
}

// Remove 移除商品，不存在时为 no-op
func (s *CartService) Remove(sessionKey string, productID int64) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionKey)
	c.Remove(productID)
	return snapshotLocked(c)
}

// SetQuantity 覆盖数量（收敛到合法区间），不存在时为 no-op
func (s *CartService) SetQuantity(sessionKey string, productID int64, qty int) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.cartLocked(sessionKey)
	c.SetQuantity(productID, qty)
	return snapshotLocked(c)
}

// Clear 清空购物车
func (s *CartService) Clear(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cartLocked(sessionKey).Clear()
}

// Snapshot 读取当前购物车视图
func (s *CartService) Snapshot(sessionKey string) CartSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshotLocked(s.cartLocked(sessionKey))
}

// Drop 浏览会话结束时释放购物车
func (s *CartService) Drop(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionKey)
}

func snapshotLocked(c *cart.Cart) CartSnapshot {
	return CartSnapshot{
		Items: c.Items(),
		Total: c.Total(),
	}
}
