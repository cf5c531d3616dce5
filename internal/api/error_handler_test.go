package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/vendora/catalog-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	ve := domain.NewValidationError()
	ve.Add("name", "name is required")

	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", ve, http.StatusUnprocessableEntity, "Validation failed"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized"), http.StatusUnauthorized, "Unauthorized"},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, "Not Found"},
		{"product not found", fmt.Errorf("lookup: %w", domain.ErrProductNotFound), http.StatusNotFound, "Sorry, product not found."},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
		{"unexpected", errors.New("mongo: connection reset"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			NewHTTPErrorHandler(zerolog.Nop())(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var resp map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if resp["success"] != false || resp["message"] != tc.message {
				t.Fatalf("unexpected body: %+v", resp)
			}
		})
	}
}

func TestHTTPErrorHandler_Committed(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("late"), c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was modified: %d %q", rec.Code, rec.Body.String())
	}
}
