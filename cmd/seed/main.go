package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/datamodels/artisan"
	"github.com/example/ahiagboo/internal/datamodels/product"
	"github.com/example/ahiagboo/internal/repository/mysql"
)

// 开发环境目录种子数据：两位匠人和一批在售商品。
// 已存在同名记录时跳过，可以重复执行。

var artisans = []artisan.Artisan{
	{UserID: "u-ada", Name: "Ada Okafor", Bio: "木雕，二十年手艺", Location: "Onitsha", AvatarURL: "/img/artisans/ada.jpg"},
	{UserID: "u-chidi", Name: "Chidi Eze", Bio: "手织布与编篮", Location: "Aba", AvatarURL: "/img/artisans/chidi.jpg"},
}

type seedProduct struct {
	artisanIdx  int
	name        string
	description string
	price       string
	imageURL    string
	category    string
	stock       int64
}

var products = []seedProduct{
	{0, "Carved Stool", "整木手工雕刻矮凳", "45.00", "/img/products/stool.jpg", "woodwork", 8},
	{0, "Carved Mask", "仪式面具复刻", "120.00", "/img/products/mask.jpg", "woodwork", 3},
	{0, "Serving Bowl", "上油木碗", "25.00", "/img/products/bowl.jpg", "woodwork", 15},
	{1, "Woven Basket", "双色手编提篮", "30.00", "/img/products/basket.jpg", "textiles", 12},
	{1, "Akwete Cloth", "传统手织布两码", "85.00", "/img/products/cloth.jpg", "textiles", 6},
	{1, "Table Runner", "窄幅织带桌旗", "18.00", "/img/products/runner.jpg", "textiles", 20},
}

func main() {
	configPath := flag.String("config", "./config", "config directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	db, err := mysql.Init(&cfg.MySQL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init mysql: %v\n", err)
		os.Exit(1)
	}

	ids := make([]int64, len(artisans))
	for i := range artisans {
		a := artisans[i]
		var existing artisan.Artisan
		err := db.Where("user_id = ?", a.UserID).First(&existing).Error
		switch {
		case err == nil:
			ids[i] = existing.ID
			fmt.Printf("artisan %q exists (id=%d)\n", a.Name, existing.ID)
			continue
		case err != gorm.ErrRecordNotFound:
			fmt.Fprintf(os.Stderr, "query artisan: %v\n", err)
			os.Exit(1)
		}
		if err := db.Create(&a).Error; err != nil {
			fmt.Fprintf(os.Stderr, "create artisan: %v\n", err)
			os.Exit(1)
		}
		ids[i] = a.ID
		fmt.Printf("created artisan %q (id=%d)\n", a.Name, a.ID)
	}

	for _, sp := range products {
		var count int64
		if err := db.Model(&product.Product{}).Where("name = ?", sp.name).Count(&count).Error; err != nil {
			fmt.Fprintf(os.Stderr, "query product: %v\n", err)
			os.Exit(1)
		}
		if count > 0 {
			fmt.Printf("product %q exists\n", sp.name)
			continue
		}
		p := product.Product{
			ArtisanID:   ids[sp.artisanIdx],
			Name:        sp.name,
			Description: sp.description,
			Price:       decimal.RequireFromString(sp.price),
			ImageURL:    sp.imageURL,
			Category:    sp.category,
			Stock:       sp.stock,
			Status:      product.StatusOnline,
		}
		if err := db.Create(&p).Error; err != nil {
			fmt.Fprintf(os.Stderr, "create product: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("created product %q (id=%d)\n", p.Name, p.ID)
	}

	fmt.Println("seed done")
}
