// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"context"
	"time"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/types"
)

type ServiceInterface interface {
	CreateMinute(ctx context.Context, authorID string, data *CreateMinuteData) (*types.Minute, error)
	ListMinutes(ctx context.Context, filter types.MinuteFilter) ([]*types.Minute, error)
	GetMinute(ctx context.Context, id string) (*types.Minute, error)
	DeleteMinute(ctx context.Context, requesterID, id string) error
	Stats(ctx context.Context) (*types.MinuteStats, error)
}

// StorageInterface is the subset of the storage operations the minutes
// service needs.
type StorageInterface interface {
	CreateMinute(ctx context.Context, m *types.Minute) (*types.Minute, error)
	GetMinuteByID(ctx context.Context, id string) (*types.Minute, error)
	ListMinutes(ctx context.Context, filter types.MinuteFilter) ([]*types.Minute, error)
	DeleteMinute(ctx context.Context, id string) error
	CountMinutes(ctx context.Context) (int64, error)
	CountMinutesSince(ctx context.Context, since time.Time) (int64, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
}

type AuthorizerInterface interface {
	Authorize(ctx context.Context, subject string, role authorization.Role, action authorization.Action) error
}
