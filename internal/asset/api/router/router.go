package router

import (
	"video_asset_service/internal/asset/api/handlers"
	"video_asset_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// RegisterRoutes 注册资产相關的路由
// @title Video Asset Service API
// @version 1.0
// @description Thin proxy in front of the Mux Video API
// @host localhost:8080
// @BasePath /
func RegisterRoutes(app *fiber.App, assetHandler *handlers.AssetHandler, apiKey string) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", handlers.Health)
	app.Post("/debug", handlers.DebugLogFlag)

	// 以下路由在 API_KEY 有設定時需要帶 key
	app.Use(middlewares.APIKeyMiddleware(apiKey))
	app.Post("/create_asset", assetHandler.CreateAsset)
	app.Get("/list_assets", assetHandler.ListAssets)
	app.Get("/get_asset", assetHandler.GetAsset)
	app.Post("/delete_asset", assetHandler.DeleteAsset)
	app.Delete("/delete_asset", assetHandler.DeleteAsset)
	app.Post("/process_pending", assetHandler.ProcessPending)
}
