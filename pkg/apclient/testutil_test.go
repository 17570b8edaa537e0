package apclient

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// capturedRequest records one request the fake API received, with the body
// already drained so tests can inspect it after the handler returns.
type capturedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// captureServer wraps httptest.Server and records every request before
// delegating to the test-provided handler.
type captureServer struct {
	*httptest.Server

	mu       sync.Mutex
	requests []capturedRequest
}

func newCaptureServer(t *testing.T, handler http.HandlerFunc) *captureServer {
	t.Helper()
	cs := &captureServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("reading request body: %v", err)
		}
		cs.mu.Lock()
		cs.requests = append(cs.requests, capturedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		cs.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func (cs *captureServer) Requests() []capturedRequest {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	out := make([]capturedRequest, len(cs.requests))
	copy(out, cs.requests)
	return out
}

// newTestClient builds a client against the capture server.
func newTestClient(cs *captureServer, token string) *Client {
	return New(Config{BaseURL: cs.URL, Token: token})
}

func writeData(w http.ResponseWriter, jsonData string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"data":` + jsonData + `}`))
}
