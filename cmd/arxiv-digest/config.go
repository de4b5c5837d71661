package main

import (
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-digest/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "arxiv-digest/0.1"
)

// loadConfig unmarshals and validates the viper-discovered configuration.
// A validation failure is a ConfigError: it aborts the run before any
// network call and is the only non-render path to a non-zero exit.
func loadConfig() (types.Config, error) {
	viper.SetDefault("max_results", 10)
	viper.SetDefault("code_links", true)
	viper.SetDefault("http.timeout", defaultTimeout)
	viper.SetDefault("http.user_agent", defaultUserAgent)
	viper.SetDefault("summary.model", "qwen-long")
	viper.SetDefault("summary.base_url", "https://dashscope.aliyuncs.com/compatible-mode/v1")

	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, &types.ConfigError{Field: "config", Reason: err.Error()}
	}
	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}

	cfg.Summary.APIKey = loadedSecrets.Get("openai-api-key", cfg.Summary.APIKey)
	return cfg, nil
}
