// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"testing"

	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_webhooks.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package webhooks -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const identityID = "0191e0c2-0000-7000-8000-0000000000dd"

func setupServiceTest(t *testing.T) (*gomock.Controller, *MockStorageInterface, *MockLoggerInterface, *Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockStorage := NewMockStorageInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)

	return ctrl, mockStorage, mockLogger, NewService(mockStorage, mockTracer, mockMonitor, mockLogger)
}

func TestHandleRegistrationCreatesMemberProfile(t *testing.T) {
	ctrl, mockStorage, _, svc := setupServiceTest(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, p *types.Profile) (*types.Profile, error) {
			if p.ID != identityID {
				t.Fatalf("unexpected identity id %q", p.ID)
			}
			if p.Role != "member" {
				t.Fatalf("new registrations must start as member, got %q", p.Role)
			}
			return p, nil
		},
	)

	profile, err := svc.HandleRegistration(context.Background(), identityID, "new@example.com", "New User")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.Email != "new@example.com" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestHandleRegistrationIdempotent(t *testing.T) {
	ctrl, mockStorage, mockLogger, svc := setupServiceTest(t)
	defer ctrl.Finish()

	existing := &types.Profile{ID: identityID, Email: "new@example.com", Role: "minute_editor"}

	mockStorage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Times(1).Return(nil, storage.ErrDuplicateKey)
	mockStorage.EXPECT().GetProfileByID(gomock.Any(), identityID).Times(1).Return(existing, nil)
	mockLogger.EXPECT().Debugf(gomock.Any(), gomock.Any()).Times(1)

	profile, err := svc.HandleRegistration(context.Background(), identityID, "new@example.com", "New User")
	if err != nil {
		t.Fatalf("expected duplicate registration to be tolerated, got %v", err)
	}
	if profile.Role != "minute_editor" {
		t.Fatalf("existing profile must not be downgraded, got %+v", profile)
	}
}

func TestHandleRegistrationMissingIdentityID(t *testing.T) {
	ctrl, _, _, svc := setupServiceTest(t)
	defer ctrl.Finish()

	if _, err := svc.HandleRegistration(context.Background(), "", "new@example.com", "New User"); !errors.Is(err, ErrInvalidPayload) {
		t.Fatalf("expected invalid payload error, got %v", err)
	}
}

func TestHandleRegistrationStorageFailure(t *testing.T) {
	ctrl, mockStorage, mockLogger, svc := setupServiceTest(t)
	defer ctrl.Finish()

	mockStorage.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Times(1).Return(nil, errors.New("connection reset"))
	mockLogger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	if _, err := svc.HandleRegistration(context.Background(), identityID, "new@example.com", "New User"); err == nil {
		t.Fatal("expected error")
	}
}
