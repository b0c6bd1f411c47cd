// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package authorization

import (
	"context"
)

type AuthorizerInterface interface {
	Authorize(ctx context.Context, subject string, role Role, action Action) error
}
