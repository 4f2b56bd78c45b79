package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestHandleAQIStream(t *testing.T) {
	r := testRouter(t)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	req := httptest.NewRequest(http.MethodGet, "/api/stream/aqi?city=Delhi", nil).WithContext(ctx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if got := w.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Fatalf("content-type = %q, want text/event-stream", got)
	}

	body := w.Body.String()
	if !strings.Contains(body, "event: reading") {
		t.Errorf("stream missing reading event: %q", body)
	}
	if !strings.Contains(body, `"city":"Delhi"`) {
		t.Errorf("stream missing Delhi payload: %q", body)
	}
}

func TestHandleAQIStreamUnknownCity(t *testing.T) {
	r := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/stream/aqi?city=Gotham", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
