// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/authorization"
	httptypes "github.com/canonical/minutes-service/internal/http/types"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/types"
	"github.com/canonical/minutes-service/pkg/authentication"
)

const testUserID = "0191e0c2-0000-7000-8000-000000000001"

func setupAPITest(t *testing.T) (*gomock.Controller, *MockServiceInterface, *MockLoggerInterface, *chi.Mux) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockService := NewMockServiceInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)

	mux := chi.NewMux()
	NewAPI(mockService, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

	return ctrl, mockService, mockLogger, mux
}

func TestHandleListUnauthenticated(t *testing.T) {
	ctrl, _, _, mux := setupAPITest(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandleListWithFilters(t *testing.T) {
	ctrl, mockService, _, mux := setupAPITest(t)
	defer ctrl.Finish()

	want := types.MinuteFilter{Query: "budget", Date: "2026-08-31", Attendee: "Alice", AuthorID: testUserID}
	mockService.EXPECT().ListMinutes(gomock.Any(), want).Times(1).Return([]*types.Minute{{ID: "m1", Title: "Team sync"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes?q=budget&date=2026-08-31&attendee=Alice&author="+testUserID, nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	var resp httptypes.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("unexpected envelope status %d", resp.Status)
	}
}

func TestHandleListEmptyResultIsArray(t *testing.T) {
	ctrl, mockService, _, mux := setupAPITest(t)
	defer ctrl.Finish()

	mockService.EXPECT().ListMinutes(gomock.Any(), types.MinuteFilter{}).Times(1).Return(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty array payload, got %s", rec.Body.String())
	}
}

func TestHandleCreate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			"created",
			`{"title":"Team sync","meeting_date":"2026-08-31","meeting_time":"10:00","attendees":"Alice,Bob"}`,
			nil,
			http.StatusCreated,
		},
		{
			"forbidden for members",
			`{"title":"Team sync","meeting_date":"2026-08-31","meeting_time":"10:00"}`,
			authorization.ErrPermissionDenied,
			http.StatusForbidden,
		},
		{
			"malformed body",
			`{"title":`,
			nil,
			http.StatusBadRequest,
		},
		{
			"missing fields",
			`{"title":"Team sync"}`,
			nil,
			http.StatusBadRequest,
		},
		{
			"bad date format",
			`{"title":"Team sync","meeting_date":"31/08/2026","meeting_time":"10:00"}`,
			nil,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, _, mux := setupAPITest(t)
			defer ctrl.Finish()

			if tt.wantStatus == http.StatusCreated || tt.serviceErr != nil {
				mockService.EXPECT().CreateMinute(gomock.Any(), testUserID, gomock.Any()).Times(1).DoAndReturn(
					func(ctx context.Context, authorID string, data *CreateMinuteData) (*types.Minute, error) {
						if tt.serviceErr != nil {
							return nil, tt.serviceErr
						}
						return &types.Minute{ID: "m1", Title: data.Title}, nil
					},
				)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/v0/minutes", strings.NewReader(tt.body))
			req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}

			if tt.wantStatus == http.StatusCreated && rec.Header().Get("Location") != "/api/v0/minutes/m1" {
				t.Fatalf("unexpected location header %q", rec.Header().Get("Location"))
			}
		})
	}
}

func TestHandleDetail(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"found", nil, http.StatusOK},
		{"not found", storage.ErrNotFound, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, _, mux := setupAPITest(t)
			defer ctrl.Finish()

			mockService.EXPECT().GetMinute(gomock.Any(), "m1").Times(1).DoAndReturn(
				func(ctx context.Context, id string) (*types.Minute, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return &types.Minute{ID: id}, nil
				},
			)

			req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes/m1", nil)
			req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestHandleDelete(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"forbidden", authorization.ErrPermissionDenied, http.StatusForbidden},
		{"elevated access missing", storage.ErrElevatedAccessUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, _, mux := setupAPITest(t)
			defer ctrl.Finish()

			mockService.EXPECT().DeleteMinute(gomock.Any(), testUserID, "m1").Times(1).Return(tt.serviceErr)

			req := httptest.NewRequest(http.MethodDelete, "/api/v0/minutes/m1", nil)
			req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
		})
	}
}

func TestHandleStats(t *testing.T) {
	ctrl, mockService, _, mux := setupAPITest(t)
	defer ctrl.Finish()

	mockService.EXPECT().Stats(gomock.Any()).Times(1).Return(&types.MinuteStats{Total: 42, ThisMonth: 7}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes/stats", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"total":42`) {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestHandleInternalError(t *testing.T) {
	ctrl, mockService, mockLogger, mux := setupAPITest(t)
	defer ctrl.Finish()

	mockService.EXPECT().Stats(gomock.Any()).Times(1).Return(nil, errors.New("connection reset"))
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).Times(1)

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes/stats", nil)
	req = req.WithContext(authentication.WithUserID(req.Context(), testUserID))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}
