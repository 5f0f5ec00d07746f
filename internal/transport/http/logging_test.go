package http

import (
	"strings"
	"testing"
)

func TestSummarizeBody(t *testing.T) {
	if got := summarizeBody(nil, "application/json"); got != nil {
		t.Fatalf("empty body should summarize to nil, got %v", got)
	}

	got := summarizeBody([]byte(`{"name":"Galata Tower"}`), "application/json")
	data, ok := got.(map[string]interface{})
	if !ok {
		t.Fatalf("expected decoded JSON map, got %T", got)
	}
	if data["name"] != "Galata Tower" {
		t.Fatalf("unexpected decoded body: %v", data)
	}

	big := `{"notes":"` + strings.Repeat("x", maxLoggedBody) + `"}`
	got = summarizeBody([]byte(big), "application/json")
	data, ok = got.(map[string]interface{})
	if !ok || data["_truncated"] != true {
		t.Fatalf("oversized JSON should be replaced by a truncation marker, got %v", got)
	}

	if got := summarizeBody([]byte{0xff, 0xfe, 0x00}, "application/octet-stream"); got != "binary" {
		t.Fatalf("expected binary marker, got %v", got)
	}

	long := strings.Repeat("a", maxLoggedBody+10)
	got = summarizeBody([]byte(long), "text/plain")
	s, ok := got.(string)
	if !ok || !strings.HasSuffix(s, "...(truncated)") || len(s) > maxLoggedBody+len("...(truncated)") {
		t.Fatalf("long text should be clamped, got %d bytes", len(long))
	}
}
