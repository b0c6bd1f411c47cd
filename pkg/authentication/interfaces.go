// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authentication

import (
	"context"

	"github.com/coreos/go-oidc/v3/oidc"
)

type TokenVerifierInterface interface {
	VerifyToken(ctx context.Context, rawToken string) (string, error)
}

type ProviderInterface interface {
	Verifier(config *oidc.Config) *oidc.IDTokenVerifier
}
