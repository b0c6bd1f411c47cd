// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	trace "go.opentelemetry.io/otel/trace"
	gomock "go.uber.org/mock/gomock"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/storage"
	"github.com/canonical/minutes-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package minutes -destination ./mock_minutes.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package minutes -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package minutes -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package minutes -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestParseAttendees(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", nil},
		{"only separators", " , ,, ", nil},
		{"single", "Alice", []string{"Alice"}},
		{"trims and drops empties", "Alice, Bob ,  , Carol", []string{"Alice", "Bob", "Carol"}},
		{"trailing comma", "Alice,Bob,", []string{"Alice", "Bob"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseAttendees(tt.input); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ParseAttendees(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCreateMinuteSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthorizerInterface(ctrl)

	ctx := context.Background()
	authorID := "0191e0c2-0000-7000-8000-000000000001"

	mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.CreateMinute").Times(1).Return(ctx, trace.SpanFromContext(ctx))
	mockStorage.EXPECT().GetProfileByID(gomock.Any(), authorID).Times(1).Return(
		&types.Profile{ID: authorID, Role: "minute_editor"}, nil,
	)
	mockAuthz.EXPECT().Authorize(gomock.Any(), authorID, authorization.RoleMinuteEditor, authorization.ActionCreateMinute).Times(1).Return(nil)
	mockStorage.EXPECT().CreateMinute(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, m *types.Minute) (*types.Minute, error) {
			if !reflect.DeepEqual(m.Attendees, []string{"Alice", "Bob", "Carol"}) {
				t.Fatalf("unexpected attendees: %v", m.Attendees)
			}
			if m.Agenda != "Quarterly review" {
				t.Fatalf("unexpected agenda: %q", m.Agenda)
			}
			if m.AuthorID != authorID {
				t.Fatalf("unexpected author: %q", m.AuthorID)
			}
			stored := *m
			stored.ID = "0191e0c2-0000-7000-8000-00000000000f"
			return &stored, nil
		},
	)

	svc := NewService(mockStorage, mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)

	minute, err := svc.CreateMinute(ctx, authorID, &CreateMinuteData{
		Title:       "Team sync",
		MeetingDate: "2026-08-31",
		MeetingTime: "10:00",
		Attendees:   "Alice, Bob ,  , Carol",
		Agenda:      "Quarterly review",
		Discussion:  "<script>alert(1)</script>Budget",
		Decisions:   "Approved",
	})

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if minute.ID == "" {
		t.Fatal("expected id to be set")
	}
	if minute.Discussion != "Budget" {
		t.Fatalf("expected script tag to be stripped, got %q", minute.Discussion)
	}
}

func TestCreateMinuteRejectedBeforeStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockAuthz := NewMockAuthorizerInterface(ctrl)

	ctx := context.Background()
	authorID := "0191e0c2-0000-7000-8000-000000000001"

	valid := CreateMinuteData{Title: "Team sync", MeetingDate: "2026-08-31", MeetingTime: "10:00"}

	tests := []struct {
		name    string
		mutate  func(*CreateMinuteData)
		role    string
		wantErr error
	}{
		{"member cannot create", func(*CreateMinuteData) {}, "member", authorization.ErrPermissionDenied},
		{"missing title", func(d *CreateMinuteData) { d.Title = "" }, "minute_keeper", ErrInvalidMinute},
		{"missing date", func(d *CreateMinuteData) { d.MeetingDate = "" }, "minute_keeper", ErrInvalidMinute},
		{"malformed date", func(d *CreateMinuteData) { d.MeetingDate = "31/08/2026" }, "minute_keeper", ErrInvalidMinute},
		{"missing time", func(d *CreateMinuteData) { d.MeetingTime = "" }, "minute_keeper", ErrInvalidMinute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// CreateMinute is deliberately not expected: nothing may
			// reach the store when the request is rejected.
			mockStorage := NewMockStorageInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.CreateMinute").Times(1).Return(ctx, trace.SpanFromContext(ctx))
			mockStorage.EXPECT().GetProfileByID(gomock.Any(), authorID).Times(1).Return(
				&types.Profile{ID: authorID, Role: tt.role}, nil,
			)

			role := authorization.Normalize(tt.role)
			if authorization.CanPerform(role, authorization.ActionCreateMinute) {
				mockAuthz.EXPECT().Authorize(gomock.Any(), authorID, role, authorization.ActionCreateMinute).Times(1).Return(nil)
			} else {
				mockAuthz.EXPECT().Authorize(gomock.Any(), authorID, role, authorization.ActionCreateMinute).Times(1).Return(authorization.ErrPermissionDenied)
			}

			svc := NewService(mockStorage, mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)

			data := valid
			tt.mutate(&data)

			if _, err := svc.CreateMinute(ctx, authorID, &data); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateMinuteUnknownRequester(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthorizerInterface(ctrl)

	ctx := context.Background()

	mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.CreateMinute").Times(1).Return(ctx, trace.SpanFromContext(ctx))
	mockStorage.EXPECT().GetProfileByID(gomock.Any(), "ghost").Times(1).Return(nil, storage.ErrNotFound)

	svc := NewService(mockStorage, mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)

	_, err := svc.CreateMinute(ctx, "ghost", &CreateMinuteData{Title: "x", MeetingDate: "2026-08-31", MeetingTime: "10:00"})
	if !errors.Is(err, authorization.ErrPermissionDenied) {
		t.Fatalf("expected permission denied for missing profile, got %v", err)
	}
}

func TestDeleteMinute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	requesterID := "0191e0c2-0000-7000-8000-000000000002"
	minuteID := "0191e0c2-0000-7000-8000-00000000000f"

	tests := []struct {
		name     string
		role     string
		elevated bool
		wantErr  error
	}{
		{"super_admin with elevated access", "super_admin", true, nil},
		{"super_admin without elevated access", "super_admin", false, storage.ErrElevatedAccessUnavailable},
		{"editor denied", "minute_editor", true, authorization.ErrPermissionDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLogger := NewMockLoggerInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockStorage := NewMockStorageInterface(ctrl)
			mockElevated := NewMockStorageInterface(ctrl)
			mockAuthz := NewMockAuthorizerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.DeleteMinute").Times(1).Return(ctx, trace.SpanFromContext(ctx))
			mockStorage.EXPECT().GetProfileByID(gomock.Any(), requesterID).Times(1).Return(
				&types.Profile{ID: requesterID, Role: tt.role}, nil,
			)

			role := authorization.Normalize(tt.role)
			if role == authorization.RoleSuperAdmin {
				mockAuthz.EXPECT().Authorize(gomock.Any(), requesterID, role, authorization.ActionDeleteMinute).Times(1).Return(nil)
			} else {
				mockAuthz.EXPECT().Authorize(gomock.Any(), requesterID, role, authorization.ActionDeleteMinute).Times(1).Return(authorization.ErrPermissionDenied)
			}

			var elevated StorageInterface
			if tt.elevated {
				elevated = mockElevated
				if tt.wantErr == nil {
					mockElevated.EXPECT().DeleteMinute(gomock.Any(), minuteID).Times(1).Return(nil)
				}
			} else {
				mockLogger.EXPECT().Error(gomock.Any()).Times(1)
			}

			svc := NewService(mockStorage, elevated, mockAuthz, mockTracer, mockMonitor, mockLogger)

			if err := svc.DeleteMinute(ctx, requesterID, minuteID); !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestListMinutesPassesFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthorizerInterface(ctrl)

	ctx := context.Background()
	filter := types.MinuteFilter{Query: "budget", Attendee: "Alice"}

	mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.ListMinutes").Times(1).Return(ctx, trace.SpanFromContext(ctx))
	mockStorage.EXPECT().ListMinutes(gomock.Any(), filter).Times(1).Return([]*types.Minute{{ID: "a"}, {ID: "b"}}, nil)

	svc := NewService(mockStorage, mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)

	minutes, err := svc.ListMinutes(ctx, filter)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(minutes) != 2 {
		t.Fatalf("expected 2 minutes, got %d", len(minutes))
	}
}

func TestStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLogger := NewMockLoggerInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockStorage := NewMockStorageInterface(ctrl)
	mockAuthz := NewMockAuthorizerInterface(ctrl)

	ctx := context.Background()

	mockTracer.EXPECT().Start(gomock.Any(), "minutes.Service.Stats").Times(1).Return(ctx, trace.SpanFromContext(ctx))
	mockStorage.EXPECT().CountMinutes(gomock.Any()).Times(1).Return(int64(42), nil)
	mockStorage.EXPECT().CountMinutesSince(gomock.Any(), gomock.Any()).Times(1).DoAndReturn(
		func(ctx context.Context, since time.Time) (int64, error) {
			now := time.Now().UTC()
			want := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
			if !since.Equal(want) {
				return 0, fmt.Errorf("expected first of month %v, got %v", want, since)
			}
			return 7, nil
		},
	)

	svc := NewService(mockStorage, mockStorage, mockAuthz, mockTracer, mockMonitor, mockLogger)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if stats.Total != 42 || stats.ThisMonth != 7 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}
