// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/kratos"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
)

// CreateUserData is the validated input for a new account.
type CreateUserData struct {
	Email    string
	Password string
	FullName string
	Role     string
}

type Service struct {
	storage  StorageInterface
	elevated StorageInterface
	identity IdentityManagerInterface
	authz    AuthorizerInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	elevated StorageInterface,
	identity IdentityManagerInterface,
	authz AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:  s,
		elevated: elevated,
		identity: identity,
		authz:    authz,
		tracer:   tracer,
		monitor:  monitor,
		logger:   logger,
	}
}

// CreateUser provisions an identity and assigns the profile role, in that
// order. When the identity is created but the role assignment fails, the
// error is a *RoleNotSetError and the identity is left in place.
func (s *Service) CreateUser(ctx context.Context, requesterID string, data *CreateUserData) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.CreateUser")
	defer span.End()

	role, err := s.requesterRole(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, requesterID, role, authorization.ActionManageUsers); err != nil {
		return nil, err
	}

	if err := validateUser(data); err != nil {
		return nil, err
	}

	// Both backends are checked before the first write so a half
	// configured deployment fails cleanly instead of half way through.
	if s.elevated == nil {
		s.logger.Error("user creation attempted without elevated store access configured")
		return nil, storage.ErrElevatedAccessUnavailable
	}

	// Kratos enforces credential uniqueness on its own, but the error it
	// answers with is opaque. A preflight lookup turns the common case
	// into a clean conflict.
	existingID, err := s.identity.GetIdentityIDByEmail(ctx, data.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check for an existing identity: %w", err)
	}
	if existingID != "" {
		return nil, fmt.Errorf("identity for %s already exists: %w", data.Email, storage.ErrDuplicateKey)
	}

	identityID, err := s.identity.CreateIdentity(ctx, data.Email, data.Password, data.FullName)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	if err := s.assignRole(ctx, identityID, data); err != nil {
		s.logger.Errorf("identity %s created but role assignment failed: %v", identityID, err)
		return nil, &RoleNotSetError{IdentityID: identityID, Err: err}
	}

	return &types.Profile{
		ID:       identityID,
		FullName: data.FullName,
		Email:    data.Email,
		Role:     data.Role,
	}, nil
}

// assignRole updates the profile row the registration hook may already
// have created, falling back to an insert when it has not run yet.
func (s *Service) assignRole(ctx context.Context, identityID string, data *CreateUserData) error {
	err := s.elevated.UpdateProfile(ctx, identityID, data.FullName, data.Role)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	_, err = s.elevated.CreateProfile(ctx, &types.Profile{
		ID:       identityID,
		FullName: data.FullName,
		Email:    data.Email,
		Role:     data.Role,
	})
	return err
}

func (s *Service) ListUsers(ctx context.Context, requesterID string) ([]*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "users.Service.ListUsers")
	defer span.End()

	role, err := s.requesterRole(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, requesterID, role, authorization.ActionManageUsers); err != nil {
		return nil, err
	}

	if s.elevated == nil {
		return nil, storage.ErrElevatedAccessUnavailable
	}

	return s.elevated.ListProfiles(ctx)
}

// DeleteUser removes both the identity and the profile row. Removing your
// own account is refused so the last administrator cannot lock everyone
// out by accident.
func (s *Service) DeleteUser(ctx context.Context, requesterID, id string) error {
	ctx, span := s.tracer.Start(ctx, "users.Service.DeleteUser")
	defer span.End()

	role, err := s.requesterRole(ctx, requesterID)
	if err != nil {
		return err
	}

	if err := s.authz.Authorize(ctx, requesterID, role, authorization.ActionManageUsers); err != nil {
		return err
	}

	if requesterID == id {
		return ErrSelfDeletion
	}

	if s.elevated == nil {
		return storage.ErrElevatedAccessUnavailable
	}

	if _, err := s.identity.GetIdentity(ctx, id); err != nil {
		if errors.Is(err, kratos.ErrIdentityNotFound) {
			return storage.ErrNotFound
		}
		return fmt.Errorf("failed to resolve identity: %w", err)
	}

	if err := s.identity.DeleteIdentity(ctx, id); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	if err := s.elevated.DeleteProfile(ctx, id); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	return nil
}

func (s *Service) requesterRole(ctx context.Context, userID string) (authorization.Role, error) {
	profile, err := s.storage.GetProfileByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", authorization.ErrPermissionDenied
		}
		return "", fmt.Errorf("failed to resolve requester role: %w", err)
	}

	return authorization.Normalize(profile.Role), nil
}

func validateUser(data *CreateUserData) error {
	if data.Email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidUser)
	}
	if data.Password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidUser)
	}
	if data.FullName == "" {
		return fmt.Errorf("%w: full_name is required", ErrInvalidUser)
	}
	if !authorization.IsValidRole(data.Role) {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidUser, data.Role)
	}
	return nil
}
