package server

import (
	"encoding/json"

	"github.com/kataras/iris/v12"
	radix "github.com/mediocregopher/radix/v3"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/datamodels/order"
	"github.com/example/ahiagboo/internal/infra/redis"
	"github.com/example/ahiagboo/internal/service"
)

// RecentOrdersKey worker 维护的最近订单流水（Redis list）
const RecentOrdersKey = "orders:recent"

// RegisterAdminRoutes 注册后台管理端的 HTTP 路由。
// 端口通常是 8081，与前台 Web 服务分离。
func RegisterAdminRoutes(app *iris.Application, cfg *config.Config) error {
	redisClient, err := redis.Init(&cfg.Redis)
	if err != nil {
		return err
	}

	adminAPI := app.Party("/api")

	adminAPI.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// 运行指标：计数器活在 web/worker 进程里，经 Redis 汇聚到这里。
	// 某个进程没发布过（或快照已过期）时对应的键缺失。
	adminAPI.Get("/stats", func(ctx iris.Context) {
		procs := iris.Map{}
		for _, proc := range []string{service.StatsProcWeb, service.StatsProcWorker} {
			stats, err := service.ReadStats(redisClient, proc)
			if err != nil {
				ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
				return
			}
			if stats != nil {
				procs[proc] = stats
			}
		}
		ctx.JSON(iris.Map{"code": 0, "data": procs})
	})

	// 最近订单流水（worker 消费下单事件后写入）
	adminAPI.Get("/orders/recent", func(ctx iris.Context) {
		var raw []string
		if err := redisClient.Do(radix.Cmd(&raw, "LRANGE", RecentOrdersKey, "0", "49")); err != nil {
			ctx.StopWithJSON(500, iris.Map{"code": 500, "msg": err.Error()})
			return
		}
		events := make([]order.PlacedEvent, 0, len(raw))
		for _, item := range raw {
			var ev order.PlacedEvent
			if err := json.Unmarshal([]byte(item), &ev); err != nil {
				continue
			}
			events = append(events, ev)
		}
		ctx.JSON(iris.Map{"code": 0, "data": events})
	})

	return nil
}
