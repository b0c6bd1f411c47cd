// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/pkg/authentication"
)

//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package identity -destination ./mock_tracing.go -source=../tracing/interfaces.go

func setupMiddleware(t *testing.T) (*gomock.Controller, *Middleware) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)

	return ctrl, NewMiddleware(mockTracer, mockMonitor, mockLogger)
}

func TestHTTPMiddlewareLiftsHeader(t *testing.T) {
	ctrl, mdw := setupMiddleware(t)
	defer ctrl.Finish()

	var gotUserID string
	var gotOK bool
	handler := mdw.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = authentication.GetUserID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil)
	req.Header.Set(HeaderName, "user-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !gotOK || gotUserID != "user-1" {
		t.Fatalf("expected user-1 in context, got %q (%v)", gotUserID, gotOK)
	}
}

func TestHTTPMiddlewareWithoutHeaderStaysAnonymous(t *testing.T) {
	ctrl, mdw := setupMiddleware(t)
	defer ctrl.Finish()

	var gotOK bool
	handler := mdw.HTTPMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotOK = authentication.GetUserID(r.Context())
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v0/minutes", nil))

	if gotOK {
		t.Fatal("expected anonymous request without the identity header")
	}
}
