// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/types"
)

func TestHandleRegistrationEndpoint(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		callService bool
		serviceErr  error
		wantStatus  int
	}{
		{
			"ok",
			fmt.Sprintf(`{"identity":{"id":"%s","traits":{"email":"new@example.com","name":"New User"}}}`, identityID),
			true,
			nil,
			http.StatusOK,
		},
		{
			"malformed body",
			`{"identity":`,
			false,
			nil,
			http.StatusBadRequest,
		},
		{
			"missing identity id",
			`{"identity":{"traits":{"email":"new@example.com"}}}`,
			true,
			ErrInvalidPayload,
			http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
				func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
					return ctx, trace.SpanFromContext(ctx)
				},
			)

			if tt.callService {
				mockService.EXPECT().HandleRegistration(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
					func(ctx context.Context, id, email, fullName string) (*types.Profile, error) {
						if tt.serviceErr != nil {
							return nil, tt.serviceErr
						}
						return &types.Profile{ID: id, Email: email, FullName: fullName, Role: "member"}, nil
					},
				)
			}

			mux := chi.NewMux()
			NewAPI(mockService, mockTracer, mockMonitor, mockLogger).RegisterEndpoints(mux)

			req := httptest.NewRequest(http.MethodPost, "/api/v0/webhooks/registration", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
