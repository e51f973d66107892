package mysql

import (
	"fmt"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/datamodels/artisan"
	"github.com/example/ahiagboo/internal/datamodels/product"
)

var (
	db      *gorm.DB
	initErr error
	once    sync.Once
)

// Init 初始化全局 GORM 实例并自动迁移目录表结构
func Init(cfg *config.MySQLConfig) (*gorm.DB, error) {
	once.Do(func() {
		db, initErr = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if initErr != nil {
			initErr = fmt.Errorf("connect mysql: %w", initErr)
			return
		}
		if err := db.AutoMigrate(&product.Product{}, &artisan.Artisan{}); err != nil {
			initErr = fmt.Errorf("auto migrate: %w", err)
		}
	})
	return db, initErr
}

// DB 获取全局 DB
func DB() *gorm.DB {
	return db
}
