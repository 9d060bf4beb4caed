package middlewares

import (
	"strings"

	"video_asset_service/pkg"

	"github.com/gofiber/fiber/v2"
)

const (
	//HeaderAPIKey api key in header name
	HeaderAPIKey = "X-API-KEY"

	//QueryAPIKey api key in query name
	QueryAPIKey = "api_key"
)

// openPaths 不需要帶 key 的路徑
var openPaths = []string{"/health", "/debug"}

// APIKeyMiddleware validates the static api key in the X-API-KEY header
// expected 為空字串時不做檢查，全部放行
func APIKeyMiddleware(expected string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if expected == "" {
			return c.Next()
		}

		if pkg.Contains(openPaths, c.Path()) || strings.HasPrefix(c.Path(), "/swagger") {
			return c.Next()
		}

		// header 優先，query 參數做 fallback
		key := c.Get(HeaderAPIKey)
		if key == "" {
			key = c.Query(QueryAPIKey)
		}

		if key == "" || key != expected {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "unauthorized",
				"message": "Missing or invalid API key",
			})
		}

		return c.Next()
	}
}
