package service

import (
	"context"
	"errors"
	"strings"

	"github.com/example/ahiagboo/internal/datamodels/product"
)

// ErrNotProductOwner 匠人只能管理自己的商品
var ErrNotProductOwner = errors.New("product belongs to another artisan")

// ProductService 商品目录读取 + 匠人后台的商品管理
type ProductService struct {
	repo product.Repository
}

func NewProductService(repo product.Repository) *ProductService {
	return &ProductService{repo: repo}
}

func (s *ProductService) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOnline 在售商品，支持分类与名称关键字过滤
func (s *ProductService) ListOnline(ctx context.Context, category, keyword string) ([]*product.Product, error) {
	var (
		list []*product.Product
		err  error
	)
	if category != "" {
		list, err = s.repo.ListByCategory(ctx, category)
	} else {
		list, err = s.repo.ListOnline(ctx)
	}
	if err != nil {
		return nil, err
	}
	if keyword == "" {
		return list, nil
	}
	kw := strings.ToLower(keyword)
	filtered := make([]*product.Product, 0, len(list))
	for _, p := range list {
		if strings.Contains(strings.ToLower(p.Name), kw) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListByArtisan 匠人后台：自己名下的全部商品（含下架）
func (s *ProductService) ListByArtisan(ctx context.Context, artisanID int64) ([]*product.Product, error) {
	return s.repo.ListByArtisan(ctx, artisanID)
}

// Create 匠人新建商品
func (s *ProductService) Create(ctx context.Context, artisanID int64, p *product.Product) error {
	p.ArtisanID = artisanID
	return s.repo.Create(ctx, p)
}

// Update 匠人更新自己的商品，归属不符直接拒绝
func (s *ProductService) Update(ctx context.Context, artisanID int64, p *product.Product) error {
	existing, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if existing.ArtisanID != artisanID {
		return ErrNotProductOwner
	}
	p.ArtisanID = artisanID
	return s.repo.Update(ctx, p)
}

// Delete 匠人删除自己的商品
func (s *ProductService) Delete(ctx context.Context, artisanID, productID int64) error {
	existing, err := s.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if existing.ArtisanID != artisanID {
		return ErrNotProductOwner
	}
	return s.repo.Delete(ctx, productID)
}
