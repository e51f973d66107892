package cart

import (
	"github.com/shopspring/decimal"
)

// DefaultMaxPerItem 单个商品默认数量上限
const DefaultMaxPerItem = 10

// Item 购物车条目，价格与名称在加入时即固定
type Item struct {
	ProductID int64           `json:"productId"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"price"`
	ImageURL  string          `json:"imageUrl"`
	Quantity  int             `json:"quantity"`
}

// Subtotal 单条目小计 = 单价 × 数量
func (i Item) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart 买家当前的选购状态。条目按加入顺序排列，按 ProductID 去重。
// 所有操作都是纯状态变换：入参越界一律收敛到合法区间，从不报错。
type Cart struct {
	maxPerItem int
	items      []Item
}

// New 创建空购物车。maxPerItem <= 0 时使用默认上限。
func New(maxPerItem int) *Cart {
	if maxPerItem <= 0 {
		maxPerItem = DefaultMaxPerItem
	}
	return &Cart{maxPerItem: maxPerItem}
}

// Add 加入商品。已存在时合并数量后再按上限截断（merge-and-cap），
// 不存在时按上限截断后插入。qty <= 0 先收敛到 1 再参与合并。
func (c *Cart) Add(item Item, qty int) {
	if qty <= 0 {
		qty = 1
	}
	for idx := range c.items {
		if c.items[idx].ProductID == item.ProductID {
			c.items[idx].Quantity = c.clamp(c.items[idx].Quantity + qty)
			return
		}
	}
	item.Quantity = c.clamp(qty)
	c.items = append(c.items, item)
}

// Remove 删除商品，不存在时静默忽略
func (c *Cart) Remove(productID int64) {
	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items = append(c.items[:idx], c.items[idx+1:]...)
			return
		}
	}
}

// SetQuantity 覆盖数量并收敛到 [1, maxPerItem]，商品不存在时静默忽略
func (c *Cart) SetQuantity(productID int64, qty int) {
	for idx := range c.items {
		if c.items[idx].ProductID == productID {
			c.items[idx].Quantity = c.clamp(qty)
			return
		}
	}
}

// Clear 清空购物车
func (c *Cart) Clear() {
	c.items = nil
}

// Items 返回条目副本，避免调用方绕过操作直接改内部状态
func (c *Cart) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Total 派生合计 = Σ 单价 × 数量。每次重新求和，绝不缓存。
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// Len 当前条目数
func (c *Cart) Len() int {
	return len(c.items)
}

// IsEmpty 是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.items) == 0
}

// MaxPerItem 数量上限
func (c *Cart) MaxPerItem() int {
	return c.maxPerItem
}

func (c *Cart) clamp(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > c.maxPerItem {
		return c.maxPerItem
	}
	return qty
}
