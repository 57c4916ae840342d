package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/askbridge/askbridge/internal/handler"
	"github.com/askbridge/askbridge/internal/models"
)

type stubChecker struct {
	err error
}

func (s *stubChecker) TestConnection(ctx context.Context) error { return s.err }

func getHealth(t *testing.T, h *handler.HealthHandler) (*httptest.ResponseRecorder, models.HealthResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	h.Health(rr, req)

	var resp models.HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rr, resp
}

func TestHealthAllHealthy(t *testing.T) {
	h := handler.NewHealthHandler(&stubChecker{}, &stubChecker{})

	rr, resp := getHealth(t, h)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rr.Code)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["database"] != "ok" || resp.Checks["elasticsearch"] != "ok" {
		t.Errorf("checks = %v", resp.Checks)
	}
}

func TestHealthDegraded(t *testing.T) {
	h := handler.NewHealthHandler(&stubChecker{err: errors.New("connection refused")}, &stubChecker{})

	rr, resp := getHealth(t, h)

	if rr.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", rr.Code)
	}
	if resp.Status != "degraded" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Checks["database"] != "unavailable: connection refused" {
		t.Errorf("database check = %q", resp.Checks["database"])
	}
}

func TestHealthDisabledDependencies(t *testing.T) {
	h := handler.NewHealthHandler(nil, nil)

	rr, resp := getHealth(t, h)

	if rr.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 (disabled dependencies are not failures)", rr.Code)
	}
	if resp.Checks["database"] != "disabled" || resp.Checks["elasticsearch"] != "disabled" {
		t.Errorf("checks = %v", resp.Checks)
	}
}
