package handlers

import (
	"net/http"
	"strconv"

	"video_asset_service/internal/asset/app"
	"video_asset_service/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AssetHandler 處理影片資產相關的 HTTP 請求
type AssetHandler struct {
	Usecase    app.AssetUseCase
	PendingMax int
}

// NewAssetHandler 創建新的 AssetHandler
func NewAssetHandler(usecase app.AssetUseCase, pendingMax int) *AssetHandler {
	if pendingMax <= 0 {
		pendingMax = 2
	}
	return &AssetHandler{
		Usecase:    usecase,
		PendingMax: pendingMax,
	}
}

// assetParams create/delete 請求共用欄位，JSON 與表單都收
type assetParams struct {
	URL     string `json:"url" form:"url"`
	AssetID string `json:"asset_id" form:"asset_id"`
}

// CreateAsset 建立影片資產
// @Summary Create a video asset
// @Description Forwards the given source url to the upstream video api and relays the response
// @Tags Assets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param url formData string true "Source video URL"
// @Success 201 {object} map[string]interface{} "Upstream response"
// @Failure 400 {object} map[string]interface{} "Missing 'url' parameter"
// @Failure 502 {object} map[string]interface{} "Upstream unreachable"
// @Router /create_asset [post]
func (h *AssetHandler) CreateAsset(c *fiber.Ctx) error {
	var params assetParams
	// body 可能為空或非 JSON，解析失敗就走 query fallback
	if err := c.BodyParser(&params); err != nil {
		logger.Log.Debug("create_asset body parse fallback", zap.Error(err))
	}

	inputURL := params.URL
	if inputURL == "" {
		inputURL = c.Query("url")
	}
	if inputURL == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_parameter",
			"message": "Missing 'url' parameter",
		})
	}

	logger.Log.Info("Create asset request", zap.String("url", inputURL))

	res, err := h.Usecase.CreateAsset(c.UserContext(), inputURL)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error":   "network_error",
			"details": err.Error(),
		})
	}
	return c.Status(res.StatusCode).JSON(res.Body)
}

// ListAssets 取得資產列表
// @Summary List video assets
// @Description Relays the upstream asset list, paging params are forwarded as-is
// @Tags Assets
// @Produce json
// @Param limit query string false "Page size" default(50)
// @Param page query string false "Page number" default(0)
// @Success 200 {object} map[string]interface{} "Upstream response"
// @Failure 502 {object} map[string]interface{} "Upstream unreachable"
// @Router /list_assets [get]
func (h *AssetHandler) ListAssets(c *fiber.Ctx) error {
	limit := c.Query("limit", "50")
	page := c.Query("page", "0")

	logger.Log.Info("Listing assets", zap.String("limit", limit), zap.String("page", page))

	res, err := h.Usecase.ListAssets(c.UserContext(), limit, page)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error":   "network_error",
			"details": err.Error(),
		})
	}
	return c.Status(res.StatusCode).JSON(res.Body)
}

// GetAsset 查詢單筆資產
// @Summary Get one video asset
// @Description Relays the upstream asset detail for the given asset id
// @Tags Assets
// @Produce json
// @Param asset_id query string true "Asset ID"
// @Success 200 {object} map[string]interface{} "Upstream response"
// @Failure 400 {object} map[string]interface{} "Missing 'asset_id' parameter"
// @Failure 502 {object} map[string]interface{} "Upstream unreachable"
// @Router /get_asset [get]
func (h *AssetHandler) GetAsset(c *fiber.Ctx) error {
	assetID := c.Query("asset_id")
	if assetID == "" {
		assetID = c.FormValue("asset_id")
	}
	if assetID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_parameter",
			"message": "Missing 'asset_id' parameter",
		})
	}

	res, err := h.Usecase.GetAsset(c.UserContext(), assetID)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error":   "network_error",
			"details": err.Error(),
		})
	}
	return c.Status(res.StatusCode).JSON(res.Body)
}

// DeleteAsset 刪除資產
// @Summary Delete a video asset
// @Description Forwards the delete to the upstream video api, synthesizes a body when upstream returns none
// @Tags Assets
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param asset_id formData string true "Asset ID"
// @Success 204 {object} map[string]interface{} "Deleted"
// @Failure 400 {object} map[string]interface{} "Missing 'asset_id' parameter"
// @Failure 502 {object} map[string]interface{} "Upstream unreachable"
// @Router /delete_asset [post]
func (h *AssetHandler) DeleteAsset(c *fiber.Ctx) error {
	var assetID string
	if c.Method() == fiber.MethodDelete {
		assetID = c.Query("asset_id")
	} else {
		var params assetParams
		if err := c.BodyParser(&params); err != nil {
			logger.Log.Debug("delete_asset body parse fallback", zap.Error(err))
		}
		assetID = params.AssetID
		if assetID == "" {
			assetID = c.Query("asset_id")
		}
	}

	if assetID == "" {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   "missing_parameter",
			"message": "Missing 'asset_id' parameter",
		})
	}

	logger.Log.Info("Deleting asset", zap.String("asset_id", assetID))

	res, err := h.Usecase.DeleteAsset(c.UserContext(), assetID)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error":   "network_error",
			"details": err.Error(),
		})
	}
	return c.Status(res.StatusCode).JSON(res.Body)
}

// ProcessPending 重查處理中的資產
// @Summary Recheck pending assets
// @Description Rechecks up to max assets that have not reached ready status yet
// @Tags Assets
// @Produce json
// @Param max query int false "Max assets to recheck" default(2)
// @Success 200 {object} domain.ProcessPendingRes "Recheck summary"
// @Failure 502 {object} map[string]interface{} "Upstream unreachable"
// @Router /process_pending [post]
func (h *AssetHandler) ProcessPending(c *fiber.Ctx) error {
	max, err := strconv.Atoi(c.Query("max"))
	if err != nil || max <= 0 {
		max = h.PendingMax
	}

	logger.Log.Info("Process pending assets", zap.Int("max", max))

	res, err := h.Usecase.ProcessPending(c.UserContext(), max)
	if err != nil {
		return c.Status(http.StatusBadGateway).JSON(fiber.Map{
			"error":   "network_error",
			"details": err.Error(),
		})
	}
	return c.JSON(res)
}
