// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"

	ory "github.com/ory/client-go"
)

// NoopClient stands in when no Kratos admin URL is configured. Every call
// reports the missing configuration instead of crashing.
type NoopClient struct{}

func NewNoopClient() *NoopClient {
	return &NoopClient{}
}

func (c *NoopClient) CreateIdentity(ctx context.Context, email, password, fullName string) (string, error) {
	return "", ErrNotConfigured
}

func (c *NoopClient) GetIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	return nil, ErrNotConfigured
}

func (c *NoopClient) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	return "", ErrNotConfigured
}

func (c *NoopClient) DeleteIdentity(ctx context.Context, id string) error {
	return ErrNotConfigured
}
