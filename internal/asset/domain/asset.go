package domain

// AssetStatus definition asset status
type AssetStatus string

const (
	//AssetReady asset status is ready
	AssetReady AssetStatus = "ready"
	//AssetPreparing asset status is preparing
	AssetPreparing AssetStatus = "preparing"
	//AssetErrored asset status is errored
	AssetErrored AssetStatus = "errored"
)

// Asset 上游回傳的影片資產，服務本身不落地保存
type Asset struct {
	ID          string       `json:"id"`
	Status      string       `json:"status"`
	PlaybackIDs []PlaybackID `json:"playback_ids,omitempty"`
}

// PlaybackID playback id of asset
type PlaybackID struct {
	ID     string `json:"id"`
	Policy string `json:"policy"`
}

// IsReady check asset transcode finish
func (a Asset) IsReady() bool {
	return a.Status == string(AssetReady)
}

// IsPending check asset still waiting for upstream processing
// errored 為終態，不再重查
func (a Asset) IsPending() bool {
	return a.Status != string(AssetReady) && a.Status != string(AssetErrored)
}

// AssetEnvelope 上游單筆回應外層 {"data": {...}}
type AssetEnvelope struct {
	Data Asset `json:"data"`
}

// AssetListEnvelope 上游列表回應外層 {"data": [...]}
type AssetListEnvelope struct {
	Data []Asset `json:"data"`
}

// UpstreamResult 上游回應，只透傳不解讀
type UpstreamResult struct {
	StatusCode int
	Body       []byte
}

// ProxyRes usecase 整理後要回給呼叫端的回應
type ProxyRes struct {
	StatusCode int
	Body       interface{}
}

// PendingResult process_pending 單筆重查結果
type PendingResult struct {
	AssetID string `json:"asset_id"`
	Status  string `json:"status"`
}

// ProcessPendingRes usecase process pending response
type ProcessPendingRes struct {
	Processed int             `json:"processed"`
	Results   []PendingResult `json:"results"`
}
