package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"video_asset_service/internal/asset/domain"
)

// MuxRepo definition upstream mux video api access
type MuxRepo interface {
	CreateAsset(ctx context.Context, inputURL string) (*domain.UpstreamResult, error)
	ListAssets(ctx context.Context, limit, page string) (*domain.UpstreamResult, error)
	GetAsset(ctx context.Context, assetID string) (*domain.UpstreamResult, error)
	DeleteAsset(ctx context.Context, assetID string) (*domain.UpstreamResult, error)
}

// MuxRepo definition mux repo
type muxRepo struct {
	client      *http.Client
	baseURL     string
	tokenID     string
	tokenSecret string
}

// NewMuxRepo create MuxRepo
// 上游錯誤照樣回傳 UpstreamResult，只有傳輸層失敗才回 error
func NewMuxRepo(baseURL, tokenID, tokenSecret string, timeout time.Duration) MuxRepo {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &muxRepo{
		client:      &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		tokenID:     tokenID,
		tokenSecret: tokenSecret,
	}
}

// CreateAsset 向上游建立影片資產，payload {"input": url}
func (r *muxRepo) CreateAsset(ctx context.Context, inputURL string) (*domain.UpstreamResult, error) {
	payload := map[string]string{"input": inputURL}
	return r.do(ctx, http.MethodPost, "/assets", nil, payload)
}

// ListAssets 取得上游資產列表
func (r *muxRepo) ListAssets(ctx context.Context, limit, page string) (*domain.UpstreamResult, error) {
	query := url.Values{}
	query.Set("limit", limit)
	query.Set("page", page)
	return r.do(ctx, http.MethodGet, "/assets", query, nil)
}

// GetAsset 取得單筆資產
func (r *muxRepo) GetAsset(ctx context.Context, assetID string) (*domain.UpstreamResult, error) {
	return r.do(ctx, http.MethodGet, "/assets/"+url.PathEscape(assetID), nil, nil)
}

// DeleteAsset 刪除上游資產
func (r *muxRepo) DeleteAsset(ctx context.Context, assetID string) (*domain.UpstreamResult, error) {
	return r.do(ctx, http.MethodDelete, "/assets/"+url.PathEscape(assetID), nil, nil)
}

// do 組裝請求並帶上 basic auth，回傳原始狀態碼與 body
func (r *muxRepo) do(ctx context.Context, method, path string, query url.Values, payload interface{}) (*domain.UpstreamResult, error) {
	endpoint := r.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal upstream payload: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}
	req.SetBasicAuth(r.tokenID, r.tokenSecret)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	return &domain.UpstreamResult{
		StatusCode: resp.StatusCode,
		Body:       data,
	}, nil
}
