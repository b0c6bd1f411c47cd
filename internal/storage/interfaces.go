// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"time"

	"github.com/canonical/minutes-service/internal/types"
)

type StorageInterface interface {
	CreateMinute(ctx context.Context, m *types.Minute) (*types.Minute, error)
	GetMinuteByID(ctx context.Context, id string) (*types.Minute, error)
	ListMinutes(ctx context.Context, filter types.MinuteFilter) ([]*types.Minute, error)
	DeleteMinute(ctx context.Context, id string) error
	CountMinutes(ctx context.Context) (int64, error)
	CountMinutesSince(ctx context.Context, since time.Time) (int64, error)

	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	ListProfiles(ctx context.Context) ([]*types.Profile, error)
	UpdateProfile(ctx context.Context, id, fullName, role string) error
	DeleteProfile(ctx context.Context, id string) error
}
