// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
	"errors"

	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/tracing"
)

// ErrPermissionDenied is returned whenever a role fails the policy check.
// It is always raised before any store call is made.
var ErrPermissionDenied = errors.New("permission denied")

type Role string

const (
	RoleMember       Role = "member"
	RoleMinuteEditor Role = "minute_editor"
	RoleMinuteKeeper Role = "minute_keeper"
	RoleSuperAdmin   Role = "super_admin"
)

type Action string

const (
	ActionViewMinutes  Action = "view_minutes"
	ActionCreateMinute Action = "create_minute"
	ActionDeleteMinute Action = "delete_minute"
	ActionManageUsers  Action = "manage_users"
)

// policy is the single permission table for the whole service. Roles not
// listed for an action are denied.
var policy = map[Action][]Role{
	ActionViewMinutes:  {RoleMember, RoleMinuteEditor, RoleMinuteKeeper, RoleSuperAdmin},
	ActionCreateMinute: {RoleMinuteEditor, RoleMinuteKeeper, RoleSuperAdmin},
	ActionDeleteMinute: {RoleSuperAdmin},
	ActionManageUsers:  {RoleSuperAdmin},
}

// CanPerform evaluates the policy table for a role and action.
func CanPerform(role Role, action Action) bool {
	for _, allowed := range policy[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// Normalize maps arbitrary role strings onto the enum, defaulting unknown
// values to the least privileged role.
func Normalize(role string) Role {
	switch Role(role) {
	case RoleMember, RoleMinuteEditor, RoleMinuteKeeper, RoleSuperAdmin:
		return Role(role)
	default:
		return RoleMember
	}
}

// IsValidRole reports whether the string names one of the known roles.
func IsValidRole(role string) bool {
	switch Role(role) {
	case RoleMember, RoleMinuteEditor, RoleMinuteKeeper, RoleSuperAdmin:
		return true
	}
	return false
}

type Authorizer struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

// Authorize checks the policy table and returns ErrPermissionDenied on
// failure, recording the denial on the security channel.
func (a *Authorizer) Authorize(ctx context.Context, subject string, role Role, action Action) error {
	_, span := a.tracer.Start(ctx, "authorization.Authorizer.Authorize")
	defer span.End()

	if CanPerform(role, action) {
		return nil
	}

	a.logger.Security().AuthzFailure(subject, string(action))
	return ErrPermissionDenied
}

func NewAuthorizer(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Authorizer {
	authorizer := new(Authorizer)

	authorizer.tracer = tracer
	authorizer.monitor = monitor
	authorizer.logger = logger

	return authorizer
}
