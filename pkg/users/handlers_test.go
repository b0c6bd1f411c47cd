// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chi "github.com/go-chi/chi/v5"
	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/types"
	"github.com/canonical/minutes-service/pkg/authentication"
)

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

func authenticated(req *http.Request) *http.Request {
	return req.WithContext(authentication.WithUserID(req.Context(), adminID))
}

func TestHandleListUsers(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"listed", nil, http.StatusOK},
		{"forbidden", authorization.ErrPermissionDenied, http.StatusForbidden},
		{"elevated access missing", storage.ErrElevatedAccessUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, _, mux := setupAPITest(t)
			defer ctrl.Finish()

			mockService.EXPECT().ListUsers(gomock.Any(), adminID).Times(1).DoAndReturn(
				func(ctx context.Context, requesterID string) ([]*types.Profile, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}
					return []*types.Profile{{ID: "a", FullName: "Alice", Role: "member"}}, nil
				},
			)

			req := authenticated(httptest.NewRequest(http.MethodGet, "/api/v0/users", nil))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestHandleListUsersUnauthenticated(t *testing.T) {
	ctrl, _, _, mux := setupAPITest(t)
	defer ctrl.Finish()

	req := httptest.NewRequest(http.MethodGet, "/api/v0/users", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestHandleCreateUser(t *testing.T) {
	validBody := `{"email":"new.user@example.com","password":"correct-horse-battery","full_name":"New User","role":"minute_editor"}`

	tests := []struct {
		name        string
		body        string
		serviceErr  error
		callService bool
		wantStatus  int
		wantMessage string
	}{
		{"created", validBody, nil, true, http.StatusCreated, ""},
		{"invalid email", `{"email":"nope","password":"correct-horse-battery","full_name":"N","role":"member"}`, nil, false, http.StatusBadRequest, ""},
		{"short password", `{"email":"a@b.com","password":"short","full_name":"N","role":"member"}`, nil, false, http.StatusBadRequest, ""},
		{"unknown role", `{"email":"a@b.com","password":"correct-horse-battery","full_name":"N","role":"owner"}`, nil, false, http.StatusBadRequest, ""},
		{"forbidden", validBody, authorization.ErrPermissionDenied, true, http.StatusForbidden, ""},
		{"duplicate email", validBody, storage.ErrDuplicateKey, true, http.StatusConflict, ""},
		{
			"role not set",
			validBody,
			&RoleNotSetError{IdentityID: identityID, Err: errors.New("connection reset")},
			true,
			http.StatusInternalServerError,
			"user " + identityID + " created but role not set",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, mockLogger, mux := setupAPITest(t)
			defer ctrl.Finish()

			if tt.callService {
				mockService.EXPECT().CreateUser(gomock.Any(), adminID, gomock.Any()).Times(1).DoAndReturn(
					func(ctx context.Context, requesterID string, data *CreateUserData) (*types.Profile, error) {
						if tt.serviceErr != nil {
							return nil, tt.serviceErr
						}
						return &types.Profile{ID: identityID, Email: data.Email, FullName: data.FullName, Role: data.Role}, nil
					},
				)
			}
			mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any()).AnyTimes()

			req := authenticated(httptest.NewRequest(http.MethodPost, "/api/v0/users", strings.NewReader(tt.body)))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
			if tt.wantMessage != "" && !strings.Contains(rec.Body.String(), tt.wantMessage) {
				t.Fatalf("expected message %q in %s", tt.wantMessage, rec.Body.String())
			}
			if tt.wantStatus == http.StatusCreated && rec.Header().Get("Location") != "/api/v0/users/"+identityID {
				t.Fatalf("unexpected location header %q", rec.Header().Get("Location"))
			}
		})
	}
}

func TestHandleDeleteUser(t *testing.T) {
	targetID := "0191e0c2-0000-7000-8000-0000000000cc"

	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{"deleted", nil, http.StatusNoContent},
		{"self deletion", ErrSelfDeletion, http.StatusBadRequest},
		{"forbidden", authorization.ErrPermissionDenied, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, mockService, _, mux := setupAPITest(t)
			defer ctrl.Finish()

			mockService.EXPECT().DeleteUser(gomock.Any(), adminID, targetID).Times(1).Return(tt.serviceErr)

			req := authenticated(httptest.NewRequest(http.MethodDelete, "/api/v0/users/"+targetID, nil))
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d: %s", tt.wantStatus, rec.Code, rec.Body.String())
			}
		})
	}
}
