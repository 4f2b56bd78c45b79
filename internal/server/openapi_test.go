package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleOpenAPI(t *testing.T) {
	h := handleOpenAPI()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	rec := httptest.NewRecorder()

	h(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	if got := rec.Header().Get("Content-Type"); !strings.Contains(got, "application/json") {
		t.Fatalf("content-type = %q, want application/json", got)
	}

	body := rec.Body.String()
	for _, path := range []string{
		`"/api/aqi/current"`,
		`"/api/aqi/history"`,
		`"/api/cities"`,
		`"/api/insights/aqi"`,
		`"/api/report/submit"`,
		`"/api/report/status/{reportID}"`,
		`"/api/report/analyze-image"`,
	} {
		if !strings.Contains(body, path) {
			t.Errorf("document missing %s", path)
		}
	}
}
