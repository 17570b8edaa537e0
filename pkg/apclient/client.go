// Package apclient provides a client for the Apify platform REST API v2.
// Resource clients (actors, runs, builds, key-value stores, datasets,
// webhooks) are thin wrappers over a shared request helper that handles
// auth headers, query parameters and the {"data": ...} response envelope.
package apclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the public Apify API origin. Paths built by the
	// resource clients already include the /v2 prefix.
	DefaultBaseURL = "https://api.apify.com"

	defaultUserAgent   = "apify-client-go"
	defaultHTTPTimeout = 360 * time.Second
)

// Config holds construction options for Client. The zero value is usable:
// defaults are filled in by New.
type Config struct {
	// BaseURL is the API origin, without a trailing slash.
	BaseURL string
	// Token is the Apify API token. Requests are sent unauthenticated
	// when empty.
	Token string
	// UserAgent overrides the User-Agent header.
	UserAgent string
	// HTTPClient overrides the underlying *http.Client.
	HTTPClient *http.Client
	// Logger receives debug-level request/response lines when set.
	Logger *slog.Logger
}

// Client is the entry point for all API operations.
type Client struct {
	baseURL   string
	token     string
	userAgent string
	httpc     *http.Client
	log       *slog.Logger
}

// New returns a client with defaults applied for any unset Config field.
func New(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: defaultHTTPTimeout}
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Client{
		baseURL:   baseURL,
		token:     cfg.Token,
		userAgent: userAgent,
		httpc:     httpc,
		log:       cfg.Logger,
	}
}

// BaseURL returns the API origin the client was configured with.
func (c *Client) BaseURL() string { return c.baseURL }

// requestSpec describes one outbound HTTP request. Either path (resolved
// against the client base URL) or rawURL (absolute, e.g. a signed upload
// URL) must be set.
type requestSpec struct {
	method  string
	path    string
	rawURL  string
	params  url.Values
	jsonIn  any
	body    []byte
	headers map[string]string
	// noAuth suppresses the Authorization header. Set for requests that
	// leave the API origin, such as signed-URL uploads.
	noAuth bool
	// rawOut asks for the raw response body instead of JSON decoding.
	rawOut bool
}

func (c *Client) endpoint(spec requestSpec) string {
	if spec.rawURL != "" {
		return spec.rawURL
	}
	u := c.baseURL + spec.path
	if len(spec.params) > 0 {
		u += "?" + spec.params.Encode()
	}
	return u
}

// do issues the request described by spec. On 2xx the response body is
// decoded from the {"data": ...} envelope into out (which must be a
// pointer), unless spec.rawOut is set in which case the raw bytes are
// returned. Non-2xx statuses are returned as *APIError.
func (c *Client) do(ctx context.Context, spec requestSpec, out any) ([]byte, error) {
	body, _, err := c.doHeaders(ctx, spec, out)
	return body, err
}

// doHeaders is do plus the response headers, for the few endpoints whose
// result partly lives in headers (e.g. record content types).
func (c *Client) doHeaders(ctx context.Context, spec requestSpec, out any) ([]byte, http.Header, error) {
	var payload io.Reader
	switch {
	case spec.jsonIn != nil:
		buf := &bytes.Buffer{}
		if err := json.NewEncoder(buf).Encode(spec.jsonIn); err != nil {
			return nil, nil, fmt.Errorf("encode json: %w", err)
		}
		payload = buf
	case spec.body != nil:
		payload = bytes.NewReader(spec.body)
	}

	req, err := http.NewRequestWithContext(ctx, spec.method, c.endpoint(spec), payload)
	if err != nil {
		return nil, nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if spec.jsonIn != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" && !spec.noAuth {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range spec.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if c.log != nil {
		c.log.Debug("api call", "method", spec.method, "url", c.endpoint(spec), "status", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.Header, newAPIError(resp)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.Header, fmt.Errorf("read response: %w", err)
	}
	if spec.rawOut || out == nil {
		return data, resp.Header, nil
	}

	// Every JSON endpoint wraps its payload in a data envelope; unwrap it
	// here so call sites never deal with it.
	env := struct {
		Data any `json:"data"`
	}{Data: out}
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, resp.Header, fmt.Errorf("decode json: %w", err)
	}
	return data, resp.Header, nil
}
