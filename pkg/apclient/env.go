package apclient

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvConfig mirrors the environment variables the platform sets for actors
// running on it (and that users commonly export locally).
type EnvConfig struct {
	Token      string `envconfig:"TOKEN"`
	APIBaseURL string `envconfig:"API_BASE_URL"`
	UserAgent  string `envconfig:"CLIENT_USER_AGENT"`
}

// NewFromEnv builds a client from APIFY_* environment variables
// (APIFY_TOKEN, APIFY_API_BASE_URL, APIFY_CLIENT_USER_AGENT). Unset
// variables fall back to the package defaults.
func NewFromEnv() (*Client, error) {
	var cfg EnvConfig
	if err := envconfig.Process("APIFY", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return New(Config{
		BaseURL:   cfg.APIBaseURL,
		Token:     cfg.Token,
		UserAgent: cfg.UserAgent,
	}), nil
}
