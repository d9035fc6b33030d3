package config

import (
	"fmt"
	"slices"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.bcrypt_cost must be in [%d, %d] (got %d)", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost)
	}

	if err := c.LLM.validate(); err != nil {
		return fmt.Errorf("llm: %w", err)
	}
	if err := c.Analytics.validate(); err != nil {
		return fmt.Errorf("analytics: %w", err)
	}
	if c.RateLimit.Enabled && c.RateLimit.RequestsPerSecond <= 0 {
		return fmt.Errorf("rate_limit.requests_per_second must be > 0 (got %v)", c.RateLimit.RequestsPerSecond)
	}

	return nil
}

func (l *LLMConfig) validate() error {
	if !slices.Contains([]string{ProviderOpenAI, ProviderAnthropic}, l.Provider) {
		return fmt.Errorf("provider must be %q or %q (got %q)", ProviderOpenAI, ProviderAnthropic, l.Provider)
	}
	if l.APIKey == "" {
		return fmt.Errorf("api_key is required")
	}
	if l.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0 (got %s)", l.Timeout)
	}
	if l.MaxTokens <= 0 {
		return fmt.Errorf("max_tokens must be > 0 (got %d)", l.MaxTokens)
	}
	if l.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests_per_minute must be > 0 (got %v)", l.RequestsPerMinute)
	}
	if l.Burst < 1 {
		return fmt.Errorf("burst must be >= 1 (got %d)", l.Burst)
	}
	return nil
}

func (a *AnalyticsConfig) validate() error {
	if a.RecentMax < 1 {
		return fmt.Errorf("recent_max must be >= 1 (got %d)", a.RecentMax)
	}
	if a.RecentDefault < 1 || a.RecentDefault > a.RecentMax {
		return fmt.Errorf("recent_default must be in [1, %d] (got %d)", a.RecentMax, a.RecentDefault)
	}
	if a.TopWords < 1 {
		return fmt.Errorf("top_words must be >= 1 (got %d)", a.TopWords)
	}
	return nil
}
