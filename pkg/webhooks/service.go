// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
)

// ErrInvalidPayload flags a hook body missing the identity id.
var ErrInvalidPayload = errors.New("invalid webhook payload")

type Service struct {
	storage StorageInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(s StorageInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	return &Service{
		storage: s,
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// HandleRegistration provisions the profile row for a freshly registered
// identity with the least privileged role. A rerun of the hook for the
// same identity is a no-op, not an error.
func (s *Service) HandleRegistration(ctx context.Context, identityID, email, fullName string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "webhooks.Service.HandleRegistration")
	defer span.End()

	if identityID == "" {
		return nil, fmt.Errorf("%w: identity id is required", ErrInvalidPayload)
	}

	profile, err := s.storage.CreateProfile(ctx, &types.Profile{
		ID:       identityID,
		Email:    email,
		FullName: fullName,
		Role:     string(authorization.RoleMember),
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.logger.Debugf("profile for identity %s already exists", identityID)
			return s.storage.GetProfileByID(ctx, identityID)
		}
		s.logger.Errorf("failed to provision profile for identity %s: %v", identityID, err)
		return nil, fmt.Errorf("failed to provision profile: %w", err)
	}

	return profile, nil
}
