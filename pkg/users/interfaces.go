// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"context"

	ory "github.com/ory/client-go"

	"github.com/canonical/minutes-service/internal/authorization"
	"github.com/canonical/minutes-service/internal/types"
)

type ServiceInterface interface {
	CreateUser(ctx context.Context, requesterID string, data *CreateUserData) (*types.Profile, error)
	ListUsers(ctx context.Context, requesterID string) ([]*types.Profile, error)
	DeleteUser(ctx context.Context, requesterID, id string) error
}

// StorageInterface is the subset of the storage operations the users
// service needs.
type StorageInterface interface {
	CreateProfile(ctx context.Context, p *types.Profile) (*types.Profile, error)
	GetProfileByID(ctx context.Context, id string) (*types.Profile, error)
	ListProfiles(ctx context.Context) ([]*types.Profile, error)
	UpdateProfile(ctx context.Context, id, fullName, role string) error
	DeleteProfile(ctx context.Context, id string) error
}

// IdentityManagerInterface covers the identity provider admin operations
// user management depends on.
type IdentityManagerInterface interface {
	CreateIdentity(ctx context.Context, email, password, fullName string) (string, error)
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
}

type AuthorizerInterface interface {
	Authorize(ctx context.Context, subject string, role authorization.Role, action authorization.Action) error
}
