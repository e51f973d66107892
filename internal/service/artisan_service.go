package service

import (
	"context"

	"github.com/example/ahiagboo/internal/datamodels/artisan"
)

// ArtisanService 匠人档案读取与本人更新
type ArtisanService struct {
	repo artisan.Repository
}

func NewArtisanService(repo artisan.Repository) *ArtisanService {
	return &ArtisanService{repo: repo}
}

func (s *ArtisanService) GetByID(ctx context.Context, id int64) (*artisan.Artisan, error) {
	return s.repo.GetByID(ctx, id)
}

// GetByUserID 按登录用户找对应的匠人档案（匠人后台入口）
func (s *ArtisanService) GetByUserID(ctx context.Context, userID string) (*artisan.Artisan, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *ArtisanService) ListAll(ctx context.Context) ([]*artisan.Artisan, error) {
	return s.repo.ListAll(ctx)
}

// UpdateProfile 匠人更新自己的档案
func (s *ArtisanService) UpdateProfile(ctx context.Context, a *artisan.Artisan) error {
	return s.repo.Update(ctx, a)
}
