package controllers

import (
	"github.com/kataras/iris/v12"

	"github.com/example/ahiagboo/internal/service"
)

// sessionKey 读取路由中间件放进上下文的浏览会话标识
func sessionKey(ctx iris.Context) string {
	return ctx.Values().GetString("session_key")
}

// failWith 按错误分类选择状态码，把具体描述交给前端展示
func failWith(ctx iris.Context, err error) {
	status := 502
	switch service.Classify(err) {
	case service.KindValidation:
		status = 400
	case service.KindAuth:
		status = 401
	case service.KindConflict:
		status = 409
	}
	ctx.StopWithJSON(status, iris.Map{"code": status, "msg": err.Error()})
}
