package artisan

import (
	"context"
	"time"
)

// Artisan 匠人档案，供匠人列表/主页展示
type Artisan struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    string    `gorm:"size:64;uniqueIndex" json:"userId"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Bio       string    `gorm:"size:2048" json:"bio"`
	Location  string    `gorm:"size:128" json:"location"`
	AvatarURL string    `gorm:"size:255" json:"avatarUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Repository 匠人仓储接口
type Repository interface {
	GetByID(ctx context.Context, id int64) (*Artisan, error)
	GetByUserID(ctx context.Context, userID string) (*Artisan, error)
	ListAll(ctx context.Context) ([]*Artisan, error)
	Update(ctx context.Context, a *Artisan) error
}
