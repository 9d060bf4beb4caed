package main

import (
	"video_asset_service/internal/asset/api/router"

	"github.com/gofiber/fiber/v2"
)

// 此程式用於 init swagger
// swag init output ./cmd/asset_service/docs
func main() {
	// 创建 Fiber 应用
	app := fiber.New()

	// 注册路由
	router.RegisterRoutes(app, nil, "")
}
