package product

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product 商品目录条目。目录是只读展示数据，
// 商城核心流程（购物车/结算）只读取，不会改写。
type Product struct {
	ID          int64           `gorm:"primaryKey" json:"id"`
	ArtisanID   int64           `gorm:"index;not null" json:"artisanId"`
	Name        string          `gorm:"size:128;not null" json:"name"`
	Description string          `gorm:"size:1024" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"size:255" json:"imageUrl"`
	Category    string          `gorm:"size:32;index" json:"category"`
	Stock       int64           `gorm:"not null" json:"stock"`
	Status      int             `gorm:"index" json:"status"` // 0:下架 1:在售
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

const (
	StatusOffline = 0
	StatusOnline  = 1
)

// Repository 商品仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Product, error)
	ListOnline(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, category string) ([]*Product, error)
	ListByArtisan(ctx context.Context, artisanID int64) ([]*Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id int64) error
}
