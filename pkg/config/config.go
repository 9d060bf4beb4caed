package config

import "time"

// AssetService definition asset_service YAML structure
type AssetService struct {
	Port string `mapstructure:"port"`

	Upstream UpstreamConfig `mapstructure:"upstream"`
	Pending  PendingConfig  `mapstructure:"pending"`
}

// Worker definition asset_worker YAML structure
type Worker struct {
	APIBase  string        `mapstructure:"api_base"`
	Interval time.Duration `mapstructure:"interval"`
	Max      int           `mapstructure:"max"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// UpstreamConfig definition mux video api setting
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// PendingConfig definition process_pending setting
type PendingConfig struct {
	DefaultMax int    `mapstructure:"default_max"`
	ListLimit  string `mapstructure:"list_limit"`
}
