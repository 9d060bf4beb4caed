package worker

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	errprocess "video_asset_service/pkg/err"
	"video_asset_service/pkg/logger"
	"video_asset_service/pkg/middlewares"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Poller 定期觸發 asset_service 的 process_pending，重查轉碼中的資產
type Poller struct {
	client   *http.Client
	apiBase  string
	apiKey   string
	interval time.Duration
	max      int
}

// NewPoller 建構 Poller 實例
func NewPoller(apiBase, apiKey string, interval time.Duration, max int, timeout time.Duration) *Poller {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if max <= 0 {
		max = 2
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Poller{
		client:   &http.Client{Timeout: timeout},
		apiBase:  apiBase,
		apiKey:   apiKey,
		interval: interval,
		max:      max,
	}
}

// Run 持續輪詢直到 ctx 取消，啟動後先跑一輪再進入固定間隔
func (p *Poller) Run(ctx context.Context) {
	logger.Log.Info("Poller 已啟動，等待重查資產...",
		zap.String("api_base", p.apiBase), zap.Duration("interval", p.interval))

	if err := p.ProcessOnce(ctx); err != nil {
		logger.Log.Errorf("Poller 輪詢失敗:", err)
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.ProcessOnce(ctx); err != nil {
				logger.Log.Errorf("Poller 輪詢失敗:", err)
			}
		case <-ctx.Done():
			logger.Log.Info("Poller 收到停止訊號")
			return
		}
	}
}

// ProcessOnce 觸發一次 process_pending
func (p *Poller) ProcessOnce(ctx context.Context) error {
	endpoint := p.apiBase + "/process_pending?max=" + strconv.Itoa(p.max)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("建立 process_pending 請求失敗 : %v", err))
	}
	if p.apiKey != "" {
		req.Header.Set(middlewares.HeaderAPIKey, p.apiKey)
	}

	// 每輪帶一個 round id，日誌好對
	roundID := uuid.NewString()

	resp, err := p.client.Do(req)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("round[%s] 呼叫 process_pending 失敗 : %v", roundID, err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errprocess.Set(fmt.Sprintf("round[%s] 讀取 process_pending 回應失敗 : %v", roundID, err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Log.Warn("process_pending returned non-ok status",
			zap.String("round_id", roundID),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))
		return nil
	}

	logger.Log.Info("Processed",
		zap.String("round_id", roundID), zap.String("body", string(body)))
	return nil
}
