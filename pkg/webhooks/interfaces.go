// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package webhooks

import (
	"context"

	"github.com/canonical/minutes-service/internal/types"
)

type ServiceInterface interface {
	HandleRegistration(ctx context.Context, identityID, email, fullName string) (*types.Profile, error)
}

type StorageInterface interface {
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
}
