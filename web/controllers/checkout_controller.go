package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/service"
)

// CheckoutController 结算接口
type CheckoutController struct {
	checkout *service.CheckoutService
}

// NewCheckoutController 构造函数，供路由层复用同一套逻辑。
func NewCheckoutController(checkout *service.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// PostSubmit 提交订单。失败时购物车保持原样，由前端展示错误后用户自行重试；
// 同一会话重复提交（上一笔还在途）会收到 409。
func (c *CheckoutController) PostSubmit(ctx iris.Context) {
	var shipping order.ShippingInfo
	if err := ctx.ReadJSON(&shipping); err != nil {
		ctx.StopWithJSON(400, iris.Map{"code": 400, "msg": err.Error()})
		return
	}

	receipt, err := c.checkout.SubmitOrder(ctx.Request().Context(), sessionKey(ctx), shipping)
	if err != nil {
		failWith(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": receipt})
}

// GetOrderBy 确认页重查订单，状态以服务端为准
func (c *CheckoutController) GetOrderBy(ctx iris.Context) {
	id := ctx.Params().Get("id")
	o, err := c.checkout.GetOrder(ctx.Request().Context(), sessionKey(ctx), id)
	if err != nil {
		failWith(ctx, err)
		return
	}
	ctx.JSON(iris.Map{"code": 0, "data": o})
}
