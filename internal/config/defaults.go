package config

import "github.com/hyperjump/paperscope/internal/models"

// DefaultBaseURL is the backend address used when nothing else is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

const (
	defaultText     = "We propose a transformer-based method for question answering."
	defaultQuery    = "transformer question answering"
	defaultBarWidth = 24
)

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.UI.DefaultTopK == 0 {
		cfg.UI.DefaultTopK = models.DefaultK
	}
	cfg.UI.DefaultTopK = models.ClampK(cfg.UI.DefaultTopK)
	if cfg.UI.DefaultText == "" {
		cfg.UI.DefaultText = defaultText
	}
	if cfg.UI.DefaultQuery == "" {
		cfg.UI.DefaultQuery = defaultQuery
	}
	if cfg.UI.BarWidth <= 0 {
		cfg.UI.BarWidth = defaultBarWidth
	}
	if cfg.Stub.Host == "" {
		cfg.Stub.Host = "127.0.0.1"
	}
	if cfg.Stub.Port == 0 {
		cfg.Stub.Port = 8000
	}
}
