// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package kratos

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	ory "github.com/ory/client-go"

	"github.com/canonical/minutes-service/internal/logging"
	"github.com/canonical/minutes-service/internal/monitoring"
	"github.com/canonical/minutes-service/internal/tracing"
)

// ErrNotConfigured is returned by the noop client when identity management
// is attempted without a configured Kratos admin URL.
var ErrNotConfigured = errors.New("kratos admin access is not configured")

// ErrIdentityNotFound is returned when the identity does not exist in Kratos.
var ErrIdentityNotFound = errors.New("identity not found")

type ClientInterface interface {
	CreateIdentity(ctx context.Context, email, password, fullName string) (string, error)
	GetIdentity(ctx context.Context, id string) (*ory.Identity, error)
	GetIdentityIDByEmail(ctx context.Context, email string) (string, error)
	DeleteIdentity(ctx context.Context, id string) error
}

type Client struct {
	client  *ory.APIClient
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewClient(kratosAdminURL string, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Client {
	conf := ory.NewConfiguration()
	conf.Servers = ory.ServerConfigurations{{URL: kratosAdminURL}}
	return &Client{
		client:  ory.NewAPIClient(conf),
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

// CreateIdentity provisions a new identity with a password credential and a
// pre-verified email address, so the account is usable without a
// confirmation round trip. The full name rides along as an identity trait.
func (c *Client) CreateIdentity(ctx context.Context, email, password, fullName string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.CreateIdentity")
	defer span.End()

	traits := map[string]interface{}{
		"email": email,
		"name":  fullName,
	}

	state := "active"
	via := "email"
	status := "completed"
	verified := true

	body := ory.CreateIdentityBody{
		SchemaId: "default",
		Traits:   traits,
		State:    &state,
		Credentials: &ory.IdentityWithCredentials{
			Password: &ory.IdentityWithCredentialsPassword{
				Config: &ory.IdentityWithCredentialsPasswordConfig{
					Password: &password,
				},
			},
		},
		VerifiableAddresses: []ory.VerifiableIdentityAddress{
			{Value: email, Via: via, Verified: verified, Status: status},
		},
	}

	identity, _, err := c.client.IdentityAPI.CreateIdentity(ctx).CreateIdentityBody(body).Execute()
	if err != nil {
		return "", fmt.Errorf("failed to create identity: %w", err)
	}

	return identity.Id, nil
}

func (c *Client) GetIdentity(ctx context.Context, id string) (*ory.Identity, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetIdentity")
	defer span.End()

	identity, r, err := c.client.IdentityAPI.GetIdentity(ctx, id).Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

func (c *Client) GetIdentityIDByEmail(ctx context.Context, email string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.GetIdentityIDByEmail")
	defer span.End()

	// NOTE: we set an empty page token because of https://github.com/ory/sdk/issues/461
	ids, r, err := c.client.IdentityAPI.ListIdentities(ctx).CredentialsIdentifier(email).PageToken("").Execute()
	if err != nil {
		if r != nil && r.StatusCode == http.StatusNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to list identities: %w", err)
	}

	if len(ids) == 0 {
		return "", nil
	}

	return ids[0].Id, nil
}

// DeleteIdentity removes the identity from Kratos. Local profile cleanup is
// the caller's responsibility.
func (c *Client) DeleteIdentity(ctx context.Context, id string) error {
	ctx, span := c.tracer.Start(ctx, "kratos.Client.DeleteIdentity")
	defer span.End()

	if _, err := c.client.IdentityAPI.DeleteIdentity(ctx, id).Execute(); err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}

	return nil
}
