// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"
)

//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_verifier.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package authentication -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func setupMiddlewareTest(t *testing.T) (*gomock.Controller, *MockTokenVerifierInterface, *MockLoggerInterface, *Middleware) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockVerifier := NewMockTokenVerifierInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)

	return ctrl, mockVerifier, mockLogger, NewMiddleware(mockVerifier, mockTracer, mockMonitor, mockLogger)
}

func TestAuthenticateInjectsUserID(t *testing.T) {
	ctrl, mockVerifier, _, mdw := setupMiddlewareTest(t)
	defer ctrl.Finish()

	mockVerifier.EXPECT().VerifyToken(gomock.Any(), "valid-token").Times(1).Return("user-1", nil)

	var gotUserID string
	handler := mdw.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil)
	req.Header.Set("Authorization", "Bearer valid-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected %d, got %d", http.StatusOK, rec.Code)
	}
	if gotUserID != "user-1" {
		t.Fatalf("expected user-1 in context, got %q", gotUserID)
	}
}

func TestAuthenticateRejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		verify    bool
		verifyErr error
	}{
		{"missing header", "", false, nil},
		{"not bearer", "Basic dXNlcjpwYXNz", false, nil},
		{"invalid token", "Bearer bad-token", true, errors.New("token expired")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockVerifier, mockLogger, mdw := setupMiddlewareTest(t)
			defer ctrl.Finish()

			if tt.verify {
				mockVerifier.EXPECT().VerifyToken(gomock.Any(), "bad-token").Times(1).Return("", tt.verifyErr)
				mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)
			}

			handler := mdw.Authenticate()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not run for unauthenticated requests")
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
			}
		})
	}
}

func TestGetUserID(t *testing.T) {
	if _, ok := GetUserID(context.Background()); ok {
		t.Fatal("expected no user in empty context")
	}

	ctx := WithUserID(context.Background(), "user-1")
	if id, ok := GetUserID(ctx); !ok || id != "user-1" {
		t.Fatalf("expected user-1, got %q (%v)", id, ok)
	}

	if _, ok := GetUserID(WithUserID(context.Background(), "")); ok {
		t.Fatal("empty user id must not count as authenticated")
	}
}
