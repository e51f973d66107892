package main

import (
	"flag"
	"log"
	"time"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/infra/redis"
	"github.com/example/ahiagboo/internal/logging"
	"github.com/example/ahiagboo/internal/server"
	"github.com/example/ahiagboo/internal/service"
)

func main() {
	configPath := flag.String("config", "./config", "config directory")
	debug := flag.Bool("debug", false, "development logging")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := logging.Init(*debug); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zap.L().Sync() }()

	app := iris.New()
	if err := server.RegisterRoutes(app, cfg); err != nil {
		zap.L().Fatal("register routes failed", zap.Error(err))
	}

	// 监控快照发到 Redis，管理端跨进程读取
	go service.GetMonitor().PublishLoop(redis.Client(), service.StatsProcWeb, 10*time.Second)

	addr := cfg.Server.Addr()
	zap.L().Info("storefront listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithCharset("UTF-8"),
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("app run failed", zap.Error(err))
	}
}
