// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"testing"

	ory "github.com/ory/client-go"
	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/kratos"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_users.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package users -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	adminID    = "0191e0c2-0000-7000-8000-0000000000aa"
	identityID = "0191e0c2-0000-7000-8000-0000000000bb"
)

type serviceMocks struct {
	storage  *MockStorageInterface
	elevated *MockStorageInterface
	identity *MockIdentityManagerInterface
	authz    *MockAuthorizerInterface
	logger   *MockLoggerInterface
	tracer   *MockTracingInterface
	monitor  *MockMonitorInterface
}

func setupServiceMocks(t *testing.T) (*gomock.Controller, *serviceMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	m := &serviceMocks{
		storage:  NewMockStorageInterface(ctrl),
		elevated: NewMockStorageInterface(ctrl),
		identity: NewMockIdentityManagerInterface(ctrl),
		authz:    NewMockAuthorizerInterface(ctrl),
		logger:   NewMockLoggerInterface(ctrl),
		tracer:   NewMockTracingInterface(ctrl),
		monitor:  NewMockMonitorInterface(ctrl),
	}

	m.tracer.EXPECT().Start(gomock.Any(), gomock.Any()).AnyTimes().DoAndReturn(
		func(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
			return ctx, trace.SpanFromContext(ctx)
		},
	)

	return ctrl, m
}

func (m *serviceMocks) expectAdminRequester() {
	m.storage.EXPECT().GetProfileByID(gomock.Any(), adminID).Times(1).Return(
		&types.Profile{ID: adminID, Role: "super_admin"}, nil,
	)
	m.authz.EXPECT().Authorize(gomock.Any(), adminID, authorization.RoleSuperAdmin, authorization.ActionManageUsers).Times(1).Return(nil)
}

func (m *serviceMocks) service(elevated StorageInterface) *Service {
	return NewService(m.storage, elevated, m.identity, m.authz, m.tracer, m.monitor, m.logger)
}

func validCreateData() *CreateUserData {
	return &CreateUserData{
		Email:    "new.user@example.com",
		Password: "correct-horse-battery",
		FullName: "New User",
		Role:     "minute_editor",
	}
}

func TestCreateUserSuccess(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	data := validCreateData()

	m.expectAdminRequester()
	m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), data.Email).Times(1).Return("", nil)
	m.identity.EXPECT().CreateIdentity(gomock.Any(), data.Email, data.Password, data.FullName).Times(1).Return(identityID, nil)
	m.elevated.EXPECT().UpdateProfile(gomock.Any(), identityID, data.FullName, data.Role).Times(1).Return(nil)

	profile, err := m.service(m.elevated).CreateUser(ctx, adminID, data)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if profile.ID != identityID || profile.Role != data.Role {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestCreateUserInsertsProfileWhenHookHasNotRun(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	data := validCreateData()

	m.expectAdminRequester()
	m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), data.Email).Times(1).Return("", nil)
	m.identity.EXPECT().CreateIdentity(gomock.Any(), data.Email, data.Password, data.FullName).Times(1).Return(identityID, nil)
	m.elevated.EXPECT().UpdateProfile(gomock.Any(), identityID, data.FullName, data.Role).Times(1).Return(storage.ErrNotFound)
	m.elevated.EXPECT().CreateProfile(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, p *types.Profile) (*types.Profile, error) {
			if p.ID != identityID || p.Role != data.Role {
				t.Fatalf("unexpected profile insert %+v", p)
			}
			return p, nil
		},
	)

	if _, err := m.service(m.elevated).CreateUser(ctx, adminID, data); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCreateUserRoleNotSet(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	ctx := context.Background()
	data := validCreateData()

	m.expectAdminRequester()
	m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), data.Email).Times(1).Return("", nil)
	m.identity.EXPECT().CreateIdentity(gomock.Any(), data.Email, data.Password, data.FullName).Times(1).Return(identityID, nil)
	m.elevated.EXPECT().UpdateProfile(gomock.Any(), identityID, data.FullName, data.Role).Times(1).Return(errors.New("connection reset"))
	m.logger.EXPECT().Errorf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	// No DeleteIdentity expectation: the identity is left in place on
	// purpose when only the role assignment fails.

	_, err := m.service(m.elevated).CreateUser(ctx, adminID, data)

	var roleNotSet *RoleNotSetError
	if !errors.As(err, &roleNotSet) {
		t.Fatalf("expected RoleNotSetError, got %v", err)
	}
	if roleNotSet.IdentityID != identityID {
		t.Fatalf("expected identity id %s, got %s", identityID, roleNotSet.IdentityID)
	}
}

func TestCreateUserWithoutElevatedAccess(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	m.expectAdminRequester()
	m.logger.EXPECT().Error(gomock.Any()).Times(1)
	// CreateIdentity must not be called when the store side cannot
	// complete the operation.

	_, err := m.service(nil).CreateUser(context.Background(), adminID, validCreateData())
	if !errors.Is(err, storage.ErrElevatedAccessUnavailable) {
		t.Fatalf("expected elevated access error, got %v", err)
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	data := validCreateData()

	m.expectAdminRequester()
	m.identity.EXPECT().GetIdentityIDByEmail(gomock.Any(), data.Email).Times(1).Return(identityID, nil)
	// No CreateIdentity expectation: an existing identity must stop the
	// flow before any write.

	_, err := m.service(m.elevated).CreateUser(context.Background(), adminID, data)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestCreateUserDeniedForNonAdmins(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	m.storage.EXPECT().GetProfileByID(gomock.Any(), adminID).Times(1).Return(
		&types.Profile{ID: adminID, Role: "minute_keeper"}, nil,
	)
	m.authz.EXPECT().Authorize(gomock.Any(), adminID, authorization.RoleMinuteKeeper, authorization.ActionManageUsers).Times(1).Return(authorization.ErrPermissionDenied)

	_, err := m.service(m.elevated).CreateUser(context.Background(), adminID, validCreateData())
	if !errors.Is(err, authorization.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}
}

func TestCreateUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateUserData)
	}{
		{"missing email", func(d *CreateUserData) { d.Email = "" }},
		{"missing password", func(d *CreateUserData) { d.Password = "" }},
		{"missing full name", func(d *CreateUserData) { d.FullName = "" }},
		{"unknown role", func(d *CreateUserData) { d.Role = "owner" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl, m := setupServiceMocks(t)
			defer ctrl.Finish()

			m.expectAdminRequester()

			data := validCreateData()
			tt.mutate(data)

			if _, err := m.service(m.elevated).CreateUser(context.Background(), adminID, data); !errors.Is(err, ErrInvalidUser) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestListUsers(t *testing.T) {
	ctrl, m := setupServiceMocks(t)
	defer ctrl.Finish()

	m.expectAdminRequester()
	m.elevated.EXPECT().ListProfiles(gomock.Any()).Times(1).Return([]*types.Profile{
		{ID: "a", FullName: "Alice"},
		{ID: "b", FullName: "Bob"},
	}, nil)

	profiles, err := m.service(m.elevated).ListUsers(context.Background(), adminID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	targetID := "0191e0c2-0000-7000-8000-0000000000cc"

	t.Run("success", func(t *testing.T) {
		ctrl, m := setupServiceMocks(t)
		defer ctrl.Finish()

		m.expectAdminRequester()
		m.identity.EXPECT().GetIdentity(gomock.Any(), targetID).Times(1).Return(&ory.Identity{Id: targetID}, nil)
		m.identity.EXPECT().DeleteIdentity(gomock.Any(), targetID).Times(1).Return(nil)
		m.elevated.EXPECT().DeleteProfile(gomock.Any(), targetID).Times(1).Return(nil)

		if err := m.service(m.elevated).DeleteUser(ctx, adminID, targetID); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("self deletion refused", func(t *testing.T) {
		ctrl, m := setupServiceMocks(t)
		defer ctrl.Finish()

		m.expectAdminRequester()

		if err := m.service(m.elevated).DeleteUser(ctx, adminID, adminID); !errors.Is(err, ErrSelfDeletion) {
			t.Fatalf("expected self deletion error, got %v", err)
		}
	})

	t.Run("profile already gone", func(t *testing.T) {
		ctrl, m := setupServiceMocks(t)
		defer ctrl.Finish()

		m.expectAdminRequester()
		m.identity.EXPECT().GetIdentity(gomock.Any(), targetID).Times(1).Return(&ory.Identity{Id: targetID}, nil)
		m.identity.EXPECT().DeleteIdentity(gomock.Any(), targetID).Times(1).Return(nil)
		m.elevated.EXPECT().DeleteProfile(gomock.Any(), targetID).Times(1).Return(storage.ErrNotFound)

		if err := m.service(m.elevated).DeleteUser(ctx, adminID, targetID); err != nil {
			t.Fatalf("expected missing profile to be tolerated, got %v", err)
		}
	})

	t.Run("identity missing", func(t *testing.T) {
		ctrl, m := setupServiceMocks(t)
		defer ctrl.Finish()

		m.expectAdminRequester()
		m.identity.EXPECT().GetIdentity(gomock.Any(), targetID).Times(1).Return(nil, kratos.ErrIdentityNotFound)
		// No DeleteIdentity expectation: nothing exists to delete.

		if err := m.service(m.elevated).DeleteUser(ctx, adminID, targetID); !errors.Is(err, storage.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("without elevated access", func(t *testing.T) {
		ctrl, m := setupServiceMocks(t)
		defer ctrl.Finish()

		m.expectAdminRequester()

		if err := m.service(nil).DeleteUser(ctx, adminID, targetID); !errors.Is(err, storage.ErrElevatedAccessUnavailable) {
			t.Fatalf("expected elevated access error, got %v", err)
		}
	})
}
