package handler_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/msomdec/weeklist/internal/handler"
)

func TestHandleHealth(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 30, 0, 0, time.FixedZone("X", 3600))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.HandleHealth(func() time.Time { return now })(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected Content-Type application/json, got %s", ct)
	}

	var body map[string]string
	decode(t, w, &body)

	if body["serverName"] != "weeklist-webserver" {
		t.Fatalf("unexpected serverName %q", body["serverName"])
	}
	if body["status"] != "active" {
		t.Fatalf("expected status=active, got %q", body["status"])
	}
	if body["currentTime"] != "2026-03-02T08:30:00Z" {
		t.Fatalf("unexpected currentTime %q", body["currentTime"])
	}
}

func TestHandleHealthRouting(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected security headers on /health, got %q", got)
	}
}
