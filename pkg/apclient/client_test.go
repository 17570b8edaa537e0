package apclient

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
)

func TestDo_UnwrapsDataEnvelope(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, `{"id":"abc","name":"my-actor"}`)
	})
	client := newTestClient(cs, "")

	actor, err := client.Actor("abc").Get(context.Background())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if actor == nil || actor.ID != "abc" || actor.Name != "my-actor" {
		t.Errorf("Envelope was not unwrapped correctly: %+v", actor)
	}
}

func TestDo_SetsAuthAndUserAgent(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeData(w, `{"id":"u1","username":"someone"}`)
	})
	client := newTestClient(cs, "secret")

	if _, err := client.Me(context.Background()); err != nil {
		t.Fatalf("Me failed: %v", err)
	}

	req := cs.Requests()[0]
	if got := req.Header.Get("Authorization"); got != "Bearer secret" {
		t.Errorf("Expected bearer token, got %q", got)
	}
	if got := req.Header.Get("User-Agent"); got != defaultUserAgent {
		t.Errorf("Expected default user agent, got %q", got)
	}
}

func TestDo_ParsesErrorEnvelope(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"type":"rate-limit-exceeded","message":"slow down"}}`))
	})
	client := newTestClient(cs, "")

	_, err := client.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", apiErr.StatusCode)
	}
	if apiErr.Type != "rate-limit-exceeded" || apiErr.Message != "slow down" {
		t.Errorf("Error envelope not parsed: %+v", apiErr)
	}
	if !strings.Contains(apiErr.Error(), "rate-limit-exceeded") {
		t.Errorf("Error string should mention the type: %s", apiErr.Error())
	}
}

func TestDo_NonJSONErrorBody(t *testing.T) {
	cs := newCaptureServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	})
	client := newTestClient(cs, "")

	_, err := client.Me(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected *APIError, got %v", err)
	}
	if apiErr.Message != "upstream exploded" {
		t.Errorf("Expected raw body as message, got %q", apiErr.Message)
	}
}

func TestErrIsNotFound(t *testing.T) {
	if !errIsNotFound(&APIError{StatusCode: http.StatusNotFound}) {
		t.Error("404 APIError should be not-found")
	}
	if errIsNotFound(&APIError{StatusCode: http.StatusBadRequest}) {
		t.Error("400 APIError should not be not-found")
	}
	if errIsNotFound(errors.New("plain")) {
		t.Error("plain error should not be not-found")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := New(Config{})
	if client.BaseURL() != DefaultBaseURL {
		t.Errorf("Expected default base URL, got %s", client.BaseURL())
	}

	client = New(Config{BaseURL: "https://example.com/"})
	if client.BaseURL() != "https://example.com" {
		t.Errorf("Trailing slash should be trimmed, got %s", client.BaseURL())
	}
}
