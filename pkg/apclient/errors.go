package apclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/yonnyZer0/apify/pkg/apclient/aperr"
)

// APIError is a non-2xx response from the API. Type and Message are filled
// from the Apify error envelope when present, otherwise Message carries the
// raw response body.
type APIError struct {
	StatusCode int
	Type       string
	Message    string
}

func (e *APIError) Error() string {
	switch {
	case e.Type != "":
		return fmt.Sprintf("apify: %s (%s, status %d)", e.Message, e.Type, e.StatusCode)
	case e.Message != "":
		return fmt.Sprintf("apify: %s (status %d)", e.Message, e.StatusCode)
	default:
		return fmt.Sprintf("apify: unexpected status %d", e.StatusCode)
	}
}

func newAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 16<<10))
	var env struct {
		Error struct {
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && env.Error.Message != "" {
		apiErr.Type = env.Error.Type
		apiErr.Message = env.Error.Message
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}
	return apiErr
}

// errIsNotFound reports whether err is a 404 from the API. Read paths use
// it to translate "resource does not exist" into a nil result; write paths
// intentionally do not.
func errIsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// requireNonEmpty validates a required string parameter before any I/O
// happens.
func requireNonEmpty(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return aperr.New(aperr.CodeInvalidParameter, fmt.Errorf("%s must be a non-empty string", name))
	}
	return nil
}
