package main

import (
	"flag"
	"log"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"

	"github.com/example/ahiagboo/internal/config"
	"github.com/example/ahiagboo/internal/logging"
	"github.com/example/ahiagboo/internal/server"
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
	if err := server.RegisterAdminRoutes(app, cfg); err != nil {
		zap.L().Fatal("register admin routes failed", zap.Error(err))
	}

	addr := cfg.AdminServer.Addr()
	zap.L().Info("admin listening", zap.String("addr", addr))
	if err := app.Run(
		iris.Addr(addr),
		iris.WithoutServerError(iris.ErrServerClosed),
	); err != nil {
		zap.L().Fatal("admin run failed", zap.Error(err))
	}
}
