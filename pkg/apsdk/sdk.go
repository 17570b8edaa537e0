package apsdk

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/yonnyZer0/apify/pkg/apclient"
	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

// Sdk is a small wrapper around the API client with credentials baked in.
// It provides a minimal surface that CLI commands can use so they don't need
// to wire keyring + client + config themselves.
type Sdk struct {
	Client  *apclient.Client
	BaseURL string
	Token   string
}

// NewSdk returns an initialized SDK instance. The token is resolved in
// order: explicit config value, OS keyring entry for the base URL, then the
// APIFY_TOKEN environment variable. logger may be nil; when set, the client
// debug-logs every request through it.
func NewSdk(cfg *Config, logger *slog.Logger) (*Sdk, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	baseURL := cfg.GetString(BaseUrlKey)

	token := cfg.GetString(TokenKey)
	if token == "" {
		if stored, err := LoadToken(baseURL); err == nil {
			token = stored
		}
	}
	if token == "" {
		token = os.Getenv("APIFY_TOKEN")
	}

	sdk := &Sdk{
		BaseURL: baseURL,
		Token:   token,
	}
	sdk.Client = apclient.New(apclient.Config{
		BaseURL: baseURL,
		Token:   token,
		Logger:  logger,
	})
	return sdk, nil
}

// ClearCredentials removes the cached token for the SDK's base URL from the
// keyring and resets the in-memory copy.
func (s *Sdk) ClearCredentials() {
	if s == nil || s.BaseURL == "" {
		return
	}
	_ = DeleteToken(s.BaseURL)
	s.Token = ""
}

// RequireToken fails with an unauthorized error when no token was resolved,
// so commands that need credentials can bail out before any network call.
func (s *Sdk) RequireToken() error {
	if s.Token == "" {
		return aperr.New(aperr.CodeUnauthorized, fmt.Errorf("missing credentials"))
	}
	return nil
}

// HandleUnauthorized inspects an HTTP status code and clears any cached token
// if it represents an authentication failure. It returns true when the status
// was 401 so callers can provide a helpful message to the user.
func (s *Sdk) HandleUnauthorized(status int) bool {
	if status != http.StatusUnauthorized {
		return false
	}
	s.ClearCredentials()
	return true
}
