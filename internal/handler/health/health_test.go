package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qrhunt/scavenger/internal/handler/health"
)

type mockChecker struct{ err error }

func (m mockChecker) Check(_ context.Context) error { return m.err }

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]health.Checker
		wantStatus int
		wantReport string
		wantChecks map[string]string
	}{
		{
			name: "all healthy",
			checks: map[string]health.Checker{
				"store":    mockChecker{},
				"sessions": health.CheckFunc(func(context.Context) error { return nil }),
			},
			wantStatus: http.StatusOK,
			wantReport: "ok",
			wantChecks: map[string]string{"store": "ok", "sessions": "ok"},
		},
		{
			name: "store down",
			checks: map[string]health.Checker{
				"store":    mockChecker{err: errors.New("locked")},
				"sessions": mockChecker{},
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: "degraded",
			wantChecks: map[string]string{"store": "error", "sessions": "ok"},
		},
		{
			name: "sessions down",
			checks: map[string]health.Checker{
				"store":    mockChecker{},
				"sessions": health.CheckFunc(func(context.Context) error { return errors.New("refused") }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantReport: "degraded",
			wantChecks: map[string]string{"store": "ok", "sessions": "error"},
		},
		{
			name:       "no checks",
			checks:     map[string]health.Checker{},
			wantStatus: http.StatusOK,
			wantReport: "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := health.NewHandler(slog.Default(), tt.checks)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			h.Routes().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}

			var body struct {
				Status string
				Checks map[string]struct{ Status string }
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding response: %v", err)
			}
			if body.Status != tt.wantReport {
				t.Errorf("report status = %q, want %q", body.Status, tt.wantReport)
			}
			for name, want := range tt.wantChecks {
				if got := body.Checks[name].Status; got != want {
					t.Errorf("%s status = %q, want %q", name, got, want)
				}
			}
		})
	}
}
