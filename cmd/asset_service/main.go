package main

import (
	"fmt"
	"log"
	"os"

	_ "video_asset_service/cmd/asset_service/docs" // 引入生成的 Swagger 文档
	"video_asset_service/internal/asset/api/handlers"
	"video_asset_service/internal/asset/api/router"
	"video_asset_service/internal/asset/app"
	"video_asset_service/internal/asset/repository"
	"video_asset_service/pkg/config"
	"video_asset_service/pkg/logger"
	testtool "video_asset_service/pkg/test_tool"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiber_log "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.AssetService, config.EnvConfig.AssetServiceLogPath)
	cfg := config.LoadConfig[config.AssetService](config.EnvConfig.AssetService, config.EnvConfig.AssetServiceYAMLPath)

	if config.EnvConfig.MuxTokenID == "" || config.EnvConfig.MuxTokenSecret == "" {
		logger.Log.Warn("MUX_TOKEN_ID or MUX_TOKEN_SECRET not set. Set environment variables before production use.")
	}

	// 上游 mux client，憑證走 basic auth
	muxRepo := repository.NewMuxRepo(
		cfg.Upstream.BaseURL,
		config.EnvConfig.MuxTokenID,
		config.EnvConfig.MuxTokenSecret,
		cfg.Upstream.Timeout,
	)
	usecase := app.NewAssetUseCase(muxRepo, cfg.Pending)
	assetHandler := handlers.NewAssetHandler(usecase, cfg.Pending.DefaultMax)

	// 创建 Fiber 应用
	r := fiber.New()

	// 添加日志中间件
	file, err := os.OpenFile(fmt.Sprintf("%s/access.log", config.EnvConfig.AssetServiceLogPath), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer file.Close()

	r.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	r.Use(fiber_log.New(fiber_log.Config{
		Output: file, // 将日志输出到文件
	}))
	r.Use(cors.New(cors.Config{
		AllowOrigins: config.EnvConfig.CORSOrigins,
		AllowMethods: "GET,POST,OPTIONS,DELETE",
		AllowHeaders: "Content-Type, Authorization, X-API-KEY",
	}))

	// 注册路由
	router.RegisterRoutes(r, assetHandler, config.EnvConfig.APIKey)

	testtool.StartPprof()

	// PORT 環境變數優先，沒有就用 yaml 設定
	port := config.EnvConfig.AssetServicePort
	if port == "" {
		port = cfg.Port
	}

	// 启动服务器
	if err := r.Listen(":" + port); err != nil {
		cleanup()
		logger.Log.Fatal("Server failed to start", zap.Error(err))
	}
}

func cleanup() {
	// 释放资源，例如关闭数据库连接、清理文件等
	log.Println("Performing cleanup tasks...")
}
