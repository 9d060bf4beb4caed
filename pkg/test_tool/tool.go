package testtool

import (
	"net/http"
	"net/http/httptest"
	"time"

	"video_asset_service/internal/asset/api/handlers"
	"video_asset_service/internal/asset/api/router"
	"video_asset_service/internal/asset/app"
	"video_asset_service/internal/asset/repository"
	"video_asset_service/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// NewStubUpstream 啟動一個假的上游 mux api 給測試用
func NewStubUpstream(handler http.HandlerFunc) *httptest.Server {
	return httptest.NewServer(handler)
}

// NewTestApp 組一個接到指定 usecase 的 fiber app
// apiKey 為空字串表示不做 key 檢查
func NewTestApp(usecase app.AssetUseCase, apiKey string) *fiber.App {
	r := fiber.New()
	r.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS,DELETE",
		AllowHeaders: "Content-Type, Authorization, X-API-KEY",
	}))

	assetHandler := handlers.NewAssetHandler(usecase, 2)
	router.RegisterRoutes(r, assetHandler, apiKey)
	return r
}

// NewProxyApp 從上游位址組出完整轉發鏈，測試走真的 repository
func NewProxyApp(upstreamBase, apiKey string) *fiber.App {
	repo := repository.NewMuxRepo(upstreamBase, "test-token-id", "test-token-secret", 5*time.Second)
	usecase := app.NewAssetUseCase(repo, config.PendingConfig{DefaultMax: 2, ListLimit: "50"})
	return NewTestApp(usecase, apiKey)
}
