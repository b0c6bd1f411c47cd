// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/canonical/minutes-service/internal/db"
	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/tracing"
	"github.com/canonical/minutes-service/internal/types"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

func (s *Storage) CreateMinute(ctx context.Context, m *types.Minute) (*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateMinute")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate minute ID: %w", err)
	}

	attendees := m.Attendees
	if attendees == nil {
		attendees = []string{}
	}

	var created types.Minute
	err = s.db.Statement(ctx).
		Insert("minutes").
		Columns("id", "title", "meeting_date", "meeting_time", "attendees", "agenda", "discussion", "decisions", "author_id").
		Values(id.String(), m.Title, m.MeetingDate, m.MeetingTime, pq.Array(attendees), m.Agenda, m.Discussion, m.Decisions, m.AuthorID).
		Suffix("RETURNING id, title, meeting_date::text, meeting_time, attendees, agenda, discussion, decisions, author_id, created_at").
		QueryRowContext(ctx).
		Scan(
			&created.ID, &created.Title, &created.MeetingDate, &created.MeetingTime,
			pq.Array(&created.Attendees), &created.Agenda, &created.Discussion, &created.Decisions,
			&created.AuthorID, &created.CreatedAt,
		)

	if err != nil {
		return nil, WrapForeignKeyError(err, "author profile does not exist")
	}

	return &created, nil
}

func (s *Storage) GetMinuteByID(ctx context.Context, id string) (*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMinuteByID")
	defer span.End()

	var m types.Minute
	err := s.db.Statement(ctx).
		Select(
			"m.id", "m.title", "m.meeting_date::text", "m.meeting_time", "m.attendees",
			"m.agenda", "m.discussion", "m.decisions", "m.author_id", "m.created_at",
			"COALESCE(p.full_name, '')", "COALESCE(p.email, '')",
		).
		From("minutes m").
		LeftJoin("profiles p ON p.id = m.author_id").
		Where(sq.Eq{"m.id": id}).
		QueryRowContext(ctx).
		Scan(
			&m.ID, &m.Title, &m.MeetingDate, &m.MeetingTime, pq.Array(&m.Attendees),
			&m.Agenda, &m.Discussion, &m.Decisions, &m.AuthorID, &m.CreatedAt,
			&m.AuthorName, &m.AuthorEmail,
		)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get minute: %w", err)
	}

	return &m, nil
}

// ListMinutes applies the optional filters conjunctively and orders by
// meeting date, newest first. An empty result is a nil slice, not an error.
// applyMinuteFilter conjoins the configured filter predicates. An empty
// filter leaves the query untouched.
func applyMinuteFilter(query sq.SelectBuilder, filter types.MinuteFilter) sq.SelectBuilder {
	if filter.Query != "" {
		pattern := fmt.Sprint("%", filter.Query, "%")
		query = query.Where(sq.Or{
			sq.ILike{"m.title": pattern},
			sq.ILike{"m.agenda": pattern},
			sq.ILike{"m.discussion": pattern},
		})
	}

	if filter.Date != "" {
		query = query.Where(sq.Eq{"m.meeting_date": filter.Date})
	}

	if filter.Attendee != "" {
		query = query.Where("m.attendees @> ?", pq.Array([]string{filter.Attendee}))
	}

	if filter.AuthorID != "" {
		query = query.Where(sq.Eq{"m.author_id": filter.AuthorID})
	}

	return query
}

func (s *Storage) ListMinutes(ctx context.Context, filter types.MinuteFilter) ([]*types.Minute, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMinutes")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(
			"m.id", "m.title", "m.meeting_date::text", "m.meeting_time", "m.attendees",
			"m.agenda", "m.discussion", "m.decisions", "m.author_id", "m.created_at",
			"COALESCE(p.full_name, '')", "COALESCE(p.email, '')",
		).
		From("minutes m").
		LeftJoin("profiles p ON p.id = m.author_id").
		OrderBy("m.meeting_date DESC")

	query = applyMinuteFilter(query, filter)

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list minutes: %w", err)
	}
	defer rows.Close()

	var minutes []*types.Minute
	for rows.Next() {
		var m types.Minute
		err := rows.Scan(
			&m.ID, &m.Title, &m.MeetingDate, &m.MeetingTime, pq.Array(&m.Attendees),
			&m.Agenda, &m.Discussion, &m.Decisions, &m.AuthorID, &m.CreatedAt,
			&m.AuthorName, &m.AuthorEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan minute: %w", err)
		}
		minutes = append(minutes, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating minute rows: %w", err)
	}

	return minutes, nil
}

func (s *Storage) DeleteMinute(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteMinute")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Delete("minutes").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete minute: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) CountMinutes(ctx context.Context) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountMinutes")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("minutes").
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count minutes: %w", err)
	}

	return count, nil
}

func (s *Storage) CountMinutesSince(ctx context.Context, since time.Time) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CountMinutesSince")
	defer span.End()

	var count int64
	err := s.db.Statement(ctx).
		Select("COUNT(*)").
		From("minutes").
		Where(sq.GtOrEq{"created_at": since}).
		QueryRowContext(ctx).
		Scan(&count)

	if err != nil {
		return 0, fmt.Errorf("failed to count minutes: %w", err)
	}

	return count, nil
}

func (s *Storage) CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateProfile")
	defer span.End()

	var created types.Profile
	err := s.db.Statement(ctx).
		Insert("profiles").
		Columns("id", "full_name", "email", "role").
		Values(p.ID, p.FullName, p.Email, p.Role).
		Suffix("RETURNING id, full_name, email, role, created_at").
		QueryRowContext(ctx).
		Scan(&created.ID, &created.FullName, &created.Email, &created.Role, &created.CreatedAt)

	if err != nil {
		return nil, WrapDuplicateKeyError(err, "profile already exists")
	}

	return &created, nil
}

func (s *Storage) GetProfileByID(ctx context.Context, id string) (*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetProfileByID")
	defer span.End()

	var p types.Profile
	err := s.db.Statement(ctx).
		Select("id", "full_name", "email", "role", "created_at").
		From("profiles").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx).
		Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

func (s *Storage) ListProfiles(ctx context.Context) ([]*types.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListProfiles")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select("id", "full_name", "email", "role", "created_at").
		From("profiles").
		OrderBy("full_name ASC").
		QueryContext(ctx)

	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*types.Profile
	for rows.Next() {
		var p types.Profile
		if err := rows.Scan(&p.ID, &p.FullName, &p.Email, &p.Role, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profile rows: %w", err)
	}

	return profiles, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, id, fullName, role string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateProfile")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Update("profiles").
		Set("full_name", fullName).
		Set("role", role).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) DeleteProfile(ctx context.Context, id string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteProfile")
	defer span.End()

	result, err := s.db.Statement(ctx).
		Delete("profiles").
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
