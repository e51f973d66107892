package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/example/ahiagboo/internal/datamodels/cart"
	"github.com/example/ahiagboo/internal/datamodels/product"
	"github.com/example/ahiagboo/internal/service"
)

// CartController 购物车接口。所有操作对越界入参做收敛而不是报错，
// 所以这里的失败只可能来自请求体解析或商品查询。
type CartController struct {
	carts    *service.CartService
	products *service.ProductService
}

// NewCartController 构造函数，供路由层复用同一套逻辑。
func NewCartController(carts *service.CartService, products *service.ProductService) *CartController {
	return &CartController{carts: carts, products: products}
}

// Get 返回当前购物车（条目 + 派生合计）
func (c *CartController) Get(ctx iris.Context) {
	key := sessionKey(ctx)
	ctx.JSON(iris.Map{"code": 0, "data": c.carts.Snapshot(key)})
}

// PostAdd 加入商品。名称/价格/图片以当前目录数据为准，加入后即冻结在条目里。
func (c *CartController) PostAdd(ctx iris.Context) {
	var req struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}

	p, err := c.products.GetByID(ctx.Request().Context(), req.ProductID)
	if err != nil || p == nil || p.Status != product.StatusOnline {
		ctx.StopWithJSON(404, iris.Map{"code": 404, "msg": "product not found"})
		return
	}

	snap := c.carts.Add(sessionKey(ctx), cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		UnitPrice: p.Price,
		ImageURL:  p.ImageURL,
	}, req.Quantity)
	ctx.JSON(iris.Map{"code": 0, "data": snap})
}

// PostUpdate 覆盖某商品数量
func (c *CartController) PostUpdate(ctx iris.Context) {
	var req struct {
		ProductID int64 `json:"productId"`
		Quantity  int   `json:"quantity"`
	}
	if err := ctx.ReadJSON(&req); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}
	snap := c.carts.SetQuantity(sessionKey(ctx), req.ProductID, req.Quantity)
	ctx.JSON(iris.Map{"code": 0, "data": snap})
}

// DeleteBy 移除某商品
func (c *CartController) DeleteBy(ctx iris.Context) {
	pid, _ := ctx.Params().GetInt64("id")
	snap := c.carts.Remove(sessionKey(ctx), pid)
	ctx.JSON(iris.Map{"code": 0, "data": snap})
}
