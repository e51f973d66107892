package controllers

import (
	"strconv"

	"github.com/kataras/iris/v12"

	"github.com/example/ahiagboo/internal/datamodels/artisan"
	"github.com/example/ahiagboo/internal/datamodels/product"
	"github.com/example/ahiagboo/internal/service"
)

// ProductController 商品目录与匠人后台的商品管理。
// 目录接口匿名可访问，dashboard 系列由路由层的角色中间件把关。
type ProductController struct {
	products *service.ProductService
	artisans *service.ArtisanService
}

func NewProductController(products *service.ProductService, artisans *service.ArtisanService) *ProductController {
	return &ProductController{products: products, artisans: artisans}
}

// Get 处理 GET /api/products，支持 category 与 q（名称关键字）过滤
func (c *ProductController) Get(ctx iris.Context) {
	category := ctx.URLParam("category")
	keyword := ctx.URLParam("q")
	list, err := c.products.ListOnline(ctx.Request().Context(), category, keyword)
	if err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": list})
}

// GetBy 处理 GET /api/products/{id}，下架商品对外一律 404
func (c *ProductController) GetBy(ctx iris.Context) {
	pid, _ := ctx.Params().GetInt64("id")
	p, err := c.products.GetByID(ctx.Request().Context(), pid)
	if err != nil || p == nil || p.Status != product.StatusOnline {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": p})
}

// GetArtisans 处理 GET /api/artisans
func (c *ProductController) GetArtisans(ctx iris.Context) {
	list, err := c.artisans.ListAll(ctx.Request().Context())
	if err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": list})
}

// GetArtisanBy 处理 GET /api/artisans/{id}：档案 + 名下在售商品
func (c *ProductController) GetArtisanBy(ctx iris.Context) {
	aid, _ := ctx.Params().GetInt64("id")
	a, err := c.artisans.GetByID(ctx.Request().Context(), aid)
	if err != nil || a == nil {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "artisan not found"})
		return
	}
	list, err := c.products.ListByArtisan(ctx.Request().Context(), aid)
	if err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": iris.Map{"artisan": a, "products": list}})
}

// currentArtisan 按登录用户换匠人档案。user_id 由角色中间件写入。
func (c *ProductController) currentArtisan(ctx iris.Context) (int64, bool) {
	userID := ctx.Values().GetString("user_id")
	a, err := c.artisans.GetByUserID(ctx.Request().Context(), userID)
	if err != nil || a == nil {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "artisan profile not found"})
		return 0, false
	}
	return a.ID, true
}

// GetDashboardProducts 匠人后台：自己名下全部商品（含下架）
func (c *ProductController) GetDashboardProducts(ctx iris.Context) {
	aid, ok := c.currentArtisan(ctx)
	if !ok {
		return
	}
	list, err := c.products.ListByArtisan(ctx.Request().Context(), aid)
	if err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": list})
}

// PostDashboardProduct 匠人新建商品
func (c *ProductController) PostDashboardProduct(ctx iris.Context) {
	aid, ok := c.currentArtisan(ctx)
	if !ok {
		return
	}
	var p product.Product
	if err := ctx.ReadJSON(&p); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	if err := c.products.Create(ctx.Request().Context(), aid, &p); err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": p})
}

// PutDashboardProductBy 匠人更新自己的商品，归属不符返回 403
func (c *ProductController) PutDashboardProductBy(ctx iris.Context) {
	aid, ok := c.currentArtisan(ctx)
	if !ok {
		return
	}
	pid, _ := ctx.Params().GetInt64("id")
	var p product.Product
	if err := ctx.ReadJSON(&p); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	p.ID = pid
	if err := c.products.Update(ctx.Request().Context(), aid, &p); err != nil {
		c.failDashboard(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": p})
}

// DeleteDashboardProductBy 匠人删除自己的商品
func (c *ProductController) DeleteDashboardProductBy(ctx iris.Context) {
	aid, ok := c.currentArtisan(ctx)
	if !ok {
		return
	}
	pid, _ := ctx.Params().GetInt64("id")
	if err := c.products.Delete(ctx.Request().Context(), aid, pid); err != nil {
		c.failDashboard(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"code": 0, "msg": "deleted " + strconv.FormatInt(pid, 10)})
}

// PutDashboardProfile 匠人更新自己的档案。ID/UserID 以已登录身份为准，
// 请求体里带了也会被覆盖。
func (c *ProductController) PutDashboardProfile(ctx iris.Context) {
	userID := ctx.Values().GetString("user_id")
	existing, err := c.artisans.GetByUserID(ctx.Request().Context(), userID)
	if err != nil || existing == nil {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "artisan profile not found"})
		return
	}
	var a artisan.Artisan
	if err := ctx.ReadJSON(&a); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	a.ID = existing.ID
	a.UserID = existing.UserID
	if err := c.artisans.UpdateProfile(ctx.Request().Context(), &a); err != nil {
		ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": a})
}

func (c *ProductController) failDashboard(ctx iris.Context, err error) {
	status := 500
	if err == service.ErrNotProductOwner {
		status = 403
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
}
