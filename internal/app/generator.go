package app

import (
	"fmt"

	"github.com/heartmarshall/feedback-backend/internal/adapter/llm"
	"github.com/heartmarshall/feedback-backend/internal/adapter/llm/anthropic"
	"github.com/heartmarshall/feedback-backend/internal/adapter/llm/openai"
	"github.com/heartmarshall/feedback-backend/internal/config"
)

// NewGenerator builds the configured text-generation backend behind the
// shared timeout and rate limiter.
func NewGenerator(cfg config.LLMConfig) (*llm.Throttled, error) {
	var backend llm.Generator
	switch cfg.Provider {
	case config.ProviderOpenAI:
		backend = openai.New(cfg.APIKey, cfg.BaseURL, cfg.Model)
	case config.ProviderAnthropic:
		backend = anthropic.New(cfg.APIKey, cfg.BaseURL, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
	return llm.NewThrottled(backend, cfg.RequestsPerMinute, cfg.Burst, cfg.Timeout), nil
}
