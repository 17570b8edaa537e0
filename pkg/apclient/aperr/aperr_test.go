package aperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew_NilErrorIsNil(t *testing.T) {
	if err := New(CodeInvalidParameter, nil); err != nil {
		t.Errorf("New with nil error should be nil, got %v", err)
	}
}

func TestIsCode(t *testing.T) {
	err := New(CodeInvalidParameter, fmt.Errorf("key must be a non-empty string"))
	if !IsCode(err, CodeInvalidParameter) {
		t.Error("IsCode should match the wrapped code")
	}
	if IsCode(err, CodeUnauthorized) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(nil, CodeInvalidParameter) {
		t.Error("IsCode(nil) should be false")
	}
	if IsCode(fmt.Errorf("plain"), CodeInvalidParameter) {
		t.Error("IsCode should be false for non-aperr errors")
	}
}

func TestUnwrap(t *testing.T) {
	inner := fmt.Errorf("inner cause")
	err := New(CodeMalformedResponse, inner)
	if !errors.Is(err, inner) {
		t.Error("wrapped error should be reachable through errors.Is")
	}
	if got := err.Error(); got != "malformed_response: inner cause" {
		t.Errorf("Unexpected error string: %s", got)
	}
}
