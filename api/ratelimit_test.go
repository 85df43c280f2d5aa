package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAllowFirstActionPerIP(t *testing.T) {
	rl := NewIPRateLimiter(time.Minute)

	if !rl.Allow("192.168.1.1") {
		t.Fatal("first action for an IP should be allowed")
	}
	if rl.Allow("192.168.1.1") {
		t.Fatal("second action within the interval should be blocked")
	}
	if !rl.Allow("192.168.1.2") {
		t.Fatal("a different IP should not be affected")
	}
}

func TestAllowAfterIntervalElapsed(t *testing.T) {
	rl := NewIPRateLimiter(20 * time.Millisecond)

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first action should be allowed")
	}
	time.Sleep(30 * time.Millisecond)
	if !rl.Allow("10.0.0.1") {
		t.Fatal("action after the interval should be allowed again")
	}
}

func TestThrottleBlocksWith429(t *testing.T) {
	rl := NewIPRateLimiter(time.Minute)

	req := httptest.NewRequest(http.MethodPost, "/api/comments/anime:naruto", nil)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	if !Throttle(rl, rec, req) {
		t.Fatal("first request should pass the throttle")
	}

	rec = httptest.NewRecorder()
	if Throttle(rl, rec, req) {
		t.Fatal("second request within the interval should be throttled")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429")
	}

	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode 429 body: %v", err)
	}
	if success, _ := body["success"].(bool); success {
		t.Error("429 body should carry success=false")
	}
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	if got := ClientIP(req); got != "203.0.113.7" {
		t.Errorf("expected first forwarded address, got %q", got)
	}
}

func TestClientIPFallsBackToRemoteAddr(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.4:31234"

	if got := ClientIP(req); got != "198.51.100.4" {
		t.Errorf("expected remote host without port, got %q", got)
	}
}
