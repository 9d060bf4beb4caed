package app

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"video_asset_service/internal/asset/domain"
	"video_asset_service/internal/asset/repository"
	"video_asset_service/pkg/config"
	errprocess "video_asset_service/pkg/err"
	"video_asset_service/pkg/logger"

	"go.uber.org/zap"
)

// AssetUseCase 這裡封裝了對外提供的應用服務
type AssetUseCase interface {
	CreateAsset(ctx context.Context, inputURL string) (*domain.ProxyRes, error)
	ListAssets(ctx context.Context, limit, page string) (*domain.ProxyRes, error)
	GetAsset(ctx context.Context, assetID string) (*domain.ProxyRes, error)
	DeleteAsset(ctx context.Context, assetID string) (*domain.ProxyRes, error)
	ProcessPending(ctx context.Context, max int) (*domain.ProcessPendingRes, error)
}

type assetUseCase struct {
	MuxRepo repository.MuxRepo
	Pending config.PendingConfig
}

// NewAssetUseCase 建立一個新的 AssetUseCase
func NewAssetUseCase(muxRepo repository.MuxRepo, pending config.PendingConfig) AssetUseCase {
	if pending.ListLimit == "" {
		pending.ListLimit = "50"
	}
	return &assetUseCase{
		MuxRepo: muxRepo,
		Pending: pending,
	}
}

// CreateAsset 轉發建立資產請求，照實透傳上游狀態碼與回應
func (s *assetUseCase) CreateAsset(ctx context.Context, inputURL string) (*domain.ProxyRes, error) {
	res, err := s.MuxRepo.CreateAsset(ctx, inputURL)
	if err != nil {
		errMsg := fmt.Sprintf("url[%s] 呼叫上游 Create Asset 失敗 : %v", inputURL, err)
		return nil, errprocess.Set(errMsg)
	}
	return &domain.ProxyRes{StatusCode: res.StatusCode, Body: relayBody(res.Body)}, nil
}

// ListAssets 轉發列表請求
func (s *assetUseCase) ListAssets(ctx context.Context, limit, page string) (*domain.ProxyRes, error) {
	res, err := s.MuxRepo.ListAssets(ctx, limit, page)
	if err != nil {
		errMsg := fmt.Sprintf("limit[%s] page[%s] 呼叫上游 List Assets 失敗 : %v", limit, page, err)
		return nil, errprocess.Set(errMsg)
	}
	return &domain.ProxyRes{StatusCode: res.StatusCode, Body: relayBody(res.Body)}, nil
}

// GetAsset 轉發單筆查詢請求
func (s *assetUseCase) GetAsset(ctx context.Context, assetID string) (*domain.ProxyRes, error) {
	res, err := s.MuxRepo.GetAsset(ctx, assetID)
	if err != nil {
		errMsg := fmt.Sprintf("assetID[%s] 呼叫上游 Get Asset 失敗 : %v", assetID, err)
		return nil, errprocess.Set(errMsg)
	}
	return &domain.ProxyRes{StatusCode: res.StatusCode, Body: relayBody(res.Body)}, nil
}

// DeleteAsset 轉發刪除請求
// 上游刪除成功時 body 通常為空，這裡補上固定格式回應
func (s *assetUseCase) DeleteAsset(ctx context.Context, assetID string) (*domain.ProxyRes, error) {
	res, err := s.MuxRepo.DeleteAsset(ctx, assetID)
	if err != nil {
		errMsg := fmt.Sprintf("assetID[%s] 呼叫上游 Delete Asset 失敗 : %v", assetID, err)
		return nil, errprocess.Set(errMsg)
	}

	text := strings.TrimSpace(string(res.Body))
	if text == "" {
		return &domain.ProxyRes{
			StatusCode: res.StatusCode,
			Body:       map[string]interface{}{"status": "deleted", "asset_id": assetID},
		}, nil
	}
	return &domain.ProxyRes{StatusCode: res.StatusCode, Body: relayBody(res.Body)}, nil
}

// ProcessPending 重查尚未 ready 的資產，最多取 max 筆
// 1. 向上游拉一頁資產列表
// 2. 挑出還在處理中的資產
// 3. 逐筆重新查詢目前狀態
func (s *assetUseCase) ProcessPending(ctx context.Context, max int) (*domain.ProcessPendingRes, error) {
	if max <= 0 {
		max = s.Pending.DefaultMax
	}

	listRes, err := s.MuxRepo.ListAssets(ctx, s.Pending.ListLimit, "0")
	if err != nil {
		errMsg := fmt.Sprintf("process pending 呼叫上游 List Assets 失敗 : %v", err)
		return nil, errprocess.Set(errMsg)
	}
	if listRes.StatusCode < 200 || listRes.StatusCode >= 300 {
		errMsg := fmt.Sprintf("process pending 上游 List Assets 回傳狀態 %d", listRes.StatusCode)
		return nil, errprocess.Set(errMsg)
	}

	var envelope domain.AssetListEnvelope
	if err := json.Unmarshal(listRes.Body, &envelope); err != nil {
		errMsg := fmt.Sprintf("process pending 解析上游列表失敗 : %v", err)
		return nil, errprocess.Set(errMsg)
	}

	results := make([]domain.PendingResult, 0, max)
	for _, asset := range envelope.Data {
		if len(results) >= max {
			break
		}
		if !asset.IsPending() {
			continue
		}

		getRes, err := s.MuxRepo.GetAsset(ctx, asset.ID)
		if err != nil {
			// 單筆失敗不中斷整輪，留給下一輪重查
			logger.Log.Errorf(fmt.Sprintf("process pending 重查 assetID[%s] 失敗:", asset.ID), err)
			continue
		}

		status := asset.Status
		var one domain.AssetEnvelope
		if err := json.Unmarshal(getRes.Body, &one); err == nil && one.Data.Status != "" {
			status = one.Data.Status
		}

		logger.Log.Debug("process pending rechecked",
			zap.String("asset_id", asset.ID), zap.String("status", status))
		results = append(results, domain.PendingResult{AssetID: asset.ID, Status: status})
	}

	return &domain.ProcessPendingRes{Processed: len(results), Results: results}, nil
}

// relayBody 上游 body 為 JSON 時原樣透傳，否則包成 {"body": text}
func relayBody(body []byte) interface{} {
	var parsed interface{}
	if err := json.Unmarshal(body, &parsed); err != nil || parsed == nil {
		return map[string]interface{}{"body": string(body)}
	}
	return parsed
}
