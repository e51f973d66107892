package server

import (
	"time"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/sessions"
	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/api"
	"github.com/example/ahiagboo/internal/auth"
	"github.com/example/ahiagboo/internal/config"
	sessmodel "github.com/example/ahiagboo/internal/datamodels/session"
	"github.com/example/ahiagboo/internal/infra/mq"
	"github.com/example/ahiagboo/internal/infra/redis"
	"github.com/example/ahiagboo/internal/middleware"
	"github.com/example/ahiagboo/internal/repository/mysql"
	"github.com/example/ahiagboo/internal/service"
	webcontrollers "github.com/example/ahiagboo/web/controllers"
)

// RegisterRoutes 注册前台 HTTP 路由
func RegisterRoutes(app *iris.Application, cfg *config.Config) error {
	// 初始化基础设施
	db, err := mysql.Init(&cfg.MySQL)
	if err != nil {
		return err
	}
	redisClient, err := redis.Init(&cfg.Redis)
	if err != nil {
		return err
	}
	// MQ 只承载 best-effort 的下单事件，连不上降级为不发布
	mqConn, err := mq.Init(&cfg.RabbitMQ)
	if err != nil {
		zap.L().Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		mqConn = nil
	}

	// 仓储与服务
	productRepo := mysql.NewProductRepository(db)
	artisanRepo := mysql.NewArtisanRepository(db)
	productSvc := service.NewProductService(productRepo)
	artisanSvc := service.NewArtisanService(artisanRepo)

	authClient := api.NewAuthClient(cfg.Upstream.AuthBaseURL, cfg.Upstream.Timeout())
	orderClient := api.NewOrderClient(cfg.Upstream.OrderBaseURL, cfg.Upstream.Timeout())

	tokenSlot := auth.NewRedisTokenSlot(redisClient, 0)
	userCache := auth.NewUserCache(redisClient, time.Duration(cfg.Auth.UserCacheTTLSeconds)*time.Second)

	cartSvc := service.NewCartService(cfg.Cart.MaxPerItem)
	sessionSvc := service.NewSessionService(authClient, tokenSlot, userCache)
	checkoutSvc := service.NewCheckoutService(cartSvc, sessionSvc, orderClient, mqConn)

	cartCtrl := webcontrollers.NewCartController(cartSvc, productSvc)
	userCtrl := webcontrollers.NewUserController(sessionSvc)
	checkoutCtrl := webcontrollers.NewCheckoutController(checkoutSvc)
	productCtrl := webcontrollers.NewProductController(productSvc, artisanSvc)

	// 浏览会话 cookie：购物车、认证状态、单飞标记都按它分组
	sess := sessions.New(sessions.Config{
		Cookie:  cfg.Auth.SessionCookie,
		Expires: time.Duration(cfg.Auth.SessionExpiresHours) * time.Hour,
	})

	checkoutLimiter := middleware.NewSessionLimiter(cfg.Checkout.RateCapacity, cfg.Checkout.RateRefillPerSec)

	// 会话销毁（过期或主动销毁）时释放各服务里按会话分组的内存状态，
	// 否则长时间运行的进程按访客 cookie 无限累积
	sess.OnDestroy(releaseSession(cartSvc, sessionSvc, checkoutLimiter))

	apiParty := app.Party("/api", func(ctx iris.Context) {
		s := sess.Start(ctx)
		ctx.Values().Set("session_key", s.ID())
		ctx.Next()
	})

	// 健康检查
	apiParty.Get("/health", func(ctx iris.Context) {
		ctx.JSON(iris.Map{
			"code": 0,
			"msg":  "ok",
		})
	})

	// ---------------- 目录（只读展示数据） ----------------

	apiParty.Get("/products", productCtrl.Get)
	apiParty.Get("/products/{id:int64}", productCtrl.GetBy)
	apiParty.Get("/artisans", productCtrl.GetArtisans)
	apiParty.Get("/artisans/{id:int64}", productCtrl.GetArtisanBy)

	// ---------------- 会话 ----------------

	apiParty.Get("/me", userCtrl.GetMe)
	apiParty.Post("/login", userCtrl.PostLogin)
	apiParty.Post("/logout", userCtrl.PostLogout)

	// ---------------- 购物车 ----------------

	apiParty.Get("/cart", cartCtrl.Get)
	apiParty.Post("/cart/add", cartCtrl.PostAdd)
	apiParty.Post("/cart/update", cartCtrl.PostUpdate)
	apiParty.Delete("/cart/items/{id:int64}", cartCtrl.DeleteBy)

	// ---------------- 结算（需登录） ----------------

	checkoutParty := apiParty.Party("/checkout", requireRoles(sessionSvc))
	checkoutParty.Post("/", middleware.CheckoutRateLimit(checkoutLimiter, func(ctx iris.Context) string {
		return ctx.Values().GetString("session_key")
	}), checkoutCtrl.PostSubmit)

	ordersParty := apiParty.Party("/orders", requireRoles(sessionSvc))
	ordersParty.Get("/{id:string}", checkoutCtrl.GetOrderBy)

	// ---------------- 匠人后台（需 artisan 角色） ----------------

	dashboard := apiParty.Party("/dashboard", requireRoles(sessionSvc, sessmodel.RoleArtisan))
	dashboard.Get("/products", productCtrl.GetDashboardProducts)
	dashboard.Post("/products", productCtrl.PostDashboardProduct)
	dashboard.Put("/products/{id:int64}", productCtrl.PutDashboardProductBy)
	dashboard.Delete("/products/{id:int64}", productCtrl.DeleteDashboardProductBy)
	dashboard.Put("/profile", productCtrl.PutDashboardProfile)

	return nil
}

// releaseSession 构造会话销毁回调：购物车、认证状态、限流桶
// 都只在一次浏览会话内有意义，会话没了就一起释放
func releaseSession(carts *service.CartService, sessionSvc *service.SessionService, limiter *middleware.SessionLimiter) func(sid string) {
	return func(sid string) {
		carts.Drop(sid)
		sessionSvc.Drop(sid)
		limiter.Drop(sid)
	}
}

// requireRoles 受保护路由的准入中间件：唯一的判定入口是 auth.Decide，
// 这里只负责把裁决翻译成 HTTP 行为。首次访问先完成启动恢复，
// 避免把 Loading 误判成未登录。
func requireRoles(sessionSvc *service.SessionService, required ...sessmodel.Role) iris.Handler {
	return func(ctx iris.Context) {
		key := ctx.Values().GetString("session_key")
		snap := sessionSvc.EnsureRestored(ctx.Request().Context(), key)

		var role sessmodel.Role
		if snap.User != nil {
			role = snap.User.Role
		}

		switch d := auth.Decide(snap.Phase, role, required, ctx.Path()); d.Kind {
		case auth.DecisionAllow:
			if snap.User != nil {
				ctx.Values().Set("user_id", snap.User.ID)
				ctx.Values().Set("user_role", string(snap.User.Role))
			}
			ctx.Next()
		case auth.DecisionPending:
			// 会话还在解析中：挂起而不是跳转，前端稍后重试
			ctx.StopWithJSON(202, iris.Map{"code": 202, "msg": "session pending"})
		case auth.DecisionRedirectLogin:
			ctx.StopWithJSON(401, iris.Map{
				"code":     401,
				"msg":      "login required",
				"redirect": "/login",
				"from":     d.ReturnPath,
			})
		case auth.DecisionRedirectHome:
			ctx.StopWithJSON(403, iris.Map{
				"code":     403,
				"msg":      "insufficient role",
				"redirect": "/",
			})
		}
	}
}
