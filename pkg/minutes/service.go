// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
)

// ErrInvalidMinute flags a create payload failing server-side validation.
var ErrInvalidMinute = errors.New("invalid minute")

// CreateMinuteData is the validated input for a new minute. Attendees is
// the raw comma separated field as submitted.
type CreateMinuteData struct {
	Title       string
	MeetingDate string
	MeetingTime string
	Attendees   string
	Agenda      string
	Discussion  string
	Decisions   string
}

type Service struct {
	storage  StorageInterface
	elevated StorageInterface
	authz    AuthorizerInterface

	sanitizer *bluemonday.Policy

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewService(
	s StorageInterface,
	elevated StorageInterface,
	authz AuthorizerInterface,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) *Service {
	return &Service{
		storage:   s,
		elevated:  elevated,
		authz:     authz,
		sanitizer: bluemonday.UGCPolicy(),
		tracer:    tracer,
		monitor:   monitor,
		logger:    logger,
	}
}

// CreateMinute validates and stores a new minute authored by the requester.
// The role check happens before any write reaches the store.
func (s *Service) CreateMinute(ctx context.Context, authorID string, data *CreateMinuteData) (*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "minutes.Service.CreateMinute")
	defer span.End()

	role, err := s.requesterRole(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(ctx, authorID, role, authorization.ActionCreateMinute); err != nil {
		return nil, err
	}

	if err := validateMinute(data); err != nil {
		return nil, err
	}

	minute := &types.Minute{
		Title:       data.Title,
		MeetingDate: data.MeetingDate,
		MeetingTime: data.MeetingTime,
		Attendees:   ParseAttendees(data.Attendees),
		Agenda:      s.sanitizer.Sanitize(data.Agenda),
		Discussion:  s.sanitizer.Sanitize(data.Discussion),
		Decisions:   s.sanitizer.Sanitize(data.Decisions),
		AuthorID:    authorID,
	}

	created, err := s.storage.CreateMinute(ctx, minute)
	if err != nil {
		s.logger.Errorf("failed to create minute: %v", err)
		return nil, fmt.Errorf("failed to create minute: %w", err)
	}

	return created, nil
}

func (s *Service) ListMinutes(ctx context.Context, filter types.MinuteFilter) ([]*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "minutes.Service.ListMinutes")
	defer span.End()

	return s.storage.ListMinutes(ctx, filter)
}

func (s *Service) GetMinute(ctx context.Context, id string) (*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "minutes.Service.GetMinute")
	defer span.End()

	return s.storage.GetMinuteByID(ctx, id)
}

// DeleteMinute removes a minute through the elevated store client. Deletion
// stays super_admin only; authors do not get to delete their own records.
func (s *Service) DeleteMinute(ctx context.Context, requesterID, id string) error {
	ctx, span := s.tracer.Start(ctx, "minutes.Service.DeleteMinute")
	defer span.End()

	role, err := s.requesterRole(ctx, requesterID)
	if err != nil {
		return err
	}

	if err := s.authz.Authorize(ctx, requesterID, role, authorization.ActionDeleteMinute); err != nil {
		return err
	}

	if s.elevated == nil {
		s.logger.Error("minute deletion attempted without elevated store access configured")
		return storage.ErrElevatedAccessUnavailable
	}

	return s.elevated.DeleteMinute(ctx, id)
}

// Stats returns the dashboard counters: all minutes, and minutes created
// since the start of the current month.
func (s *Service) Stats(ctx context.Context) (*types.MinuteStats, error) {
	ctx, span := s.tracer.Start(ctx, "minutes.Service.Stats")
	defer span.End()

	total, err := s.storage.CountMinutes(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	thisMonth, err := s.storage.CountMinutesSince(ctx, firstOfMonth)
	if err != nil {
		return nil, err
	}

	return &types.MinuteStats{Total: total, ThisMonth: thisMonth}, nil
}

// requesterRole resolves the requester's role fresh from the profile row.
// A missing profile is treated as a denial, not a lookup failure.
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

func validateMinute(data *CreateMinuteData) error {
	if data.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidMinute)
	}
	if data.MeetingDate == "" {
		return fmt.Errorf("%w: meeting_date is required", ErrInvalidMinute)
	}
	if _, err := time.Parse("2006-01-02", data.MeetingDate); err != nil {
		return fmt.Errorf("%w: meeting_date must be YYYY-MM-DD", ErrInvalidMinute)
	}
	if data.MeetingTime == "" {
		return fmt.Errorf("%w: meeting_time is required", ErrInvalidMinute)
	}
	return nil
}
