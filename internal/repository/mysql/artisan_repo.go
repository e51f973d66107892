package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/example/ahiagboo/internal/datamodels/artisan"
)

type artisanRepo struct {
	db *gorm.DB
}

// NewArtisanRepository 创建匠人仓储
func NewArtisanRepository(db *gorm.DB) artisan.Repository {
	return &artisanRepo{db: db}
}

func (r *artisanRepo) GetByID(ctx context.Context, id int64) (*artisan.Artisan, error) {
	var a artisan.Artisan
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *artisanRepo) GetByUserID(ctx context.Context, userID string) (*artisan.Artisan, error) {
	var a artisan.Artisan
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *artisanRepo) ListAll(ctx context.Context) ([]*artisan.Artisan, error) {
	var list []*artisan.Artisan
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *artisanRepo) Update(ctx context.Context, a *artisan.Artisan) error {
	return r.db.WithContext(ctx).Save(a).Error
}
