package validators

import (
	"net/http/httptest"
	"testing"
)

func TestParseQueryFloat(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?minPrice=150.5", nil)

	value, err := ParseQueryFloat(r, "minPrice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value == nil || *value != 150.5 {
		t.Fatalf("expected 150.5 got %v", value)
	}

	absent, err := ParseQueryFloat(r, "maxPrice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if absent != nil {
		t.Fatalf("expected nil for absent parameter, got %v", *absent)
	}

	r = httptest.NewRequest("GET", "/api/products?minPrice=cheap", nil)
	if _, err := ParseQueryFloat(r, "minPrice"); err == nil {
		t.Fatal("expected error for non-numeric value")
	}
}

func TestParsePathID(t *testing.T) {
	id, err := ParsePathID("42")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Fatalf("expected 42 got %d", id)
	}

	for _, raw := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, err := ParsePathID(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
