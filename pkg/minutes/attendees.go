// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package minutes

import (
	"strings"
)

// ParseAttendees splits a comma separated attendee list, trimming
// whitespace and dropping empty entries while preserving order.
func ParseAttendees(raw string) []string {
	parts := strings.Split(raw, ",")

	attendees := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			attendees = append(attendees, name)
		}
	}

	return attendees
}
