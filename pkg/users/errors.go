// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package users

import (
	"errors"
	"fmt"
)

// ErrSelfDeletion is returned when an administrator tries to delete their
// own account.
var ErrSelfDeletion = errors.New("cannot delete your own account")

// ErrInvalidUser flags a create payload failing server-side validation.
var ErrInvalidUser = errors.New("invalid user")

// RoleNotSetError reports the partial failure where the identity was
// provisioned but the profile role could not be assigned. The identity is
// deliberately not rolled back; the operator can retry the role assignment.
type RoleNotSetError struct {
	IdentityID string
	Err        error
}

func (e *RoleNotSetError) Error() string {
	return fmt.Sprintf("user %s created but role not set: %v", e.IdentityID, e.Err)
}

func (e *RoleNotSetError) Unwrap() error {
	return e.Err
}
