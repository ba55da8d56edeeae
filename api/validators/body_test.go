package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/adaezeumeh/thriftline-backend/pkg/errors"
)

type samplePayload struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestDecodeJSONBodyValid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Ada", "email": "ada@example.com"}`))

	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Name != "Ada" {
		t.Fatalf("unexpected decode: %+v", payload)
	}
}

func TestDecodeJSONBodyFieldErrors(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"email": "nope"}`))

	var payload samplePayload
	err := DecodeJSONBody(r, &payload)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %v", err)
	}

	typed := pkgerrors.As(err)
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if details["name"] == "" || details["email"] == "" {
		t.Fatalf("expected json-tag field names in details: %v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"name": "Ada", "email": "ada@example.com", "extra": true}`))

	var payload samplePayload
	if err := DecodeJSONBody(r, &payload); err == nil {
		t.Fatal("expected error for unknown field")
	}
}
