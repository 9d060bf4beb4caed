package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"video_asset_service/internal/worker"
	"video_asset_service/pkg/config"
	"video_asset_service/pkg/logger"
)

func main() {
	logger.Log = logger.Initialize(config.EnvConfig.AssetWorker, config.EnvConfig.AssetWorkerLogPath)
	cfg := config.LoadConfig[config.Worker](config.EnvConfig.AssetWorker, config.EnvConfig.AssetWorkerYAMLPath)

	// API_BASE 環境變數優先，沒有就用 yaml 設定
	apiBase := os.Getenv("API_BASE")
	if apiBase == "" {
		apiBase = cfg.APIBase
	}

	poller := worker.NewPoller(apiBase, config.EnvConfig.APIKey, cfg.Interval, cfg.Max, cfg.Timeout)

	// 使用 context 控制 Poller 的生命週期
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller.Run(ctx)
	logger.Log.Sync()
}
