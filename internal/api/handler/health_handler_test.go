package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestHealthHandler_Liveness(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	h := NewHealthHandler(nil)

	run(t, h.Liveness, e.NewContext(httptest.NewRequest(http.MethodGet, "/health", nil), rec))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	up := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	cases := []struct {
		name   string
		checks map[string]Check
		code   int
		status string
	}{
		{"all up", map[string]Check{"mongodb": up, "redis": up}, http.StatusOK, "ok"},
		{"redis down", map[string]Check{"mongodb": up, "redis": down}, http.StatusServiceUnavailable, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			h := NewHealthHandler(tc.checks)

			run(t, h.Readiness, e.NewContext(httptest.NewRequest(http.MethodGet, "/health/ready", nil), rec))

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			resp := decode(t, rec)
			if resp["status"] != tc.status {
				t.Fatalf("unexpected status: %v", resp["status"])
			}
			deps, _ := resp["dependencies"].(map[string]any)
			if len(deps) != len(tc.checks) {
				t.Fatalf("unexpected dependencies: %+v", deps)
			}
		})
	}
}
