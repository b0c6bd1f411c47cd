// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"
)

// Profile is this service's record of a Kratos identity. The ID column is
// the Kratos identity ID, not a locally generated one.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Role      string    `db:"role" json:"role"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Minute is a stored meeting record. Agenda, discussion and decisions hold
// sanitized rich-text markup.
type Minute struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	MeetingDate string    `db:"meeting_date" json:"meeting_date"`
	MeetingTime string    `db:"meeting_time" json:"meeting_time"`
	Attendees   []string  `db:"attendees" json:"attendees"`
	Agenda      string    `db:"agenda" json:"agenda"`
	Discussion  string    `db:"discussion" json:"discussion"`
	Decisions   string    `db:"decisions" json:"decisions"`
	AuthorID    string    `db:"author_id" json:"author_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`

	// Author display fields, joined from profiles on reads.
	AuthorName  string `db:"author_name" json:"author_name,omitempty"`
	AuthorEmail string `db:"author_email" json:"author_email,omitempty"`
}

// MinuteFilter carries the optional, conjunctive listing filters.
type MinuteFilter struct {
	Query    string
	Date     string
	Attendee string
	AuthorID string
}

// IsZero reports whether no filter criteria are set.
func (f MinuteFilter) IsZero() bool {
	return f.Query == "" && f.Date == "" && f.Attendee == "" && f.AuthorID == ""
}

// MinuteStats holds the dashboard counters.
type MinuteStats struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"this_month"`
}
