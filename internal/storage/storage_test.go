// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"strings"
	"testing"

	sq "github.com/Masterminds/squirrel"

	"github.com/canonical/minutes-service/internal/types"
)

func baseMinuteQuery() sq.SelectBuilder {
	return sq.StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("m.id").
		From("minutes m").
		OrderBy("m.meeting_date DESC")
}

func TestApplyMinuteFilterEmpty(t *testing.T) {
	query, args, err := applyMinuteFilter(baseMinuteQuery(), types.MinuteFilter{}).ToSql()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if strings.Contains(query, "WHERE") {
		t.Fatalf("expected no WHERE clause, got %s", query)
	}

	if len(args) != 0 {
		t.Fatalf("expected no args, got %v", args)
	}
}

func TestApplyMinuteFilter(t *testing.T) {
	tests := []struct {
		name string

		filter types.MinuteFilter

		clauses []string
		args    int
	}{
		{
			name:    "TextQuery",
			filter:  types.MinuteFilter{Query: "budget"},
			clauses: []string{"m.title ILIKE ?", "m.agenda ILIKE ?", "m.discussion ILIKE ?", " OR "},
			args:    3,
		},
		{
			name:    "Date",
			filter:  types.MinuteFilter{Date: "2026-08-31"},
			clauses: []string{"m.meeting_date = ?"},
			args:    1,
		},
		{
			name:    "Attendee",
			filter:  types.MinuteFilter{Attendee: "Alice"},
			clauses: []string{"m.attendees @> ?"},
			args:    1,
		},
		{
			name:    "Author",
			filter:  types.MinuteFilter{AuthorID: "user-1"},
			clauses: []string{"m.author_id = ?"},
			args:    1,
		},
		{
			name: "AllConjoined",
			filter: types.MinuteFilter{
				Query:    "budget",
				Date:     "2026-08-31",
				Attendee: "Alice",
				AuthorID: "user-1",
			},
			clauses: []string{
				"m.title ILIKE ?",
				"m.meeting_date = ?",
				"m.attendees @> ?",
				"m.author_id = ?",
				" AND ",
			},
			args: 6,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			// squirrel renders ? placeholders into $n at ToSql time, use
			// the unnumbered form to check clause shape.
			query, args, err := applyMinuteFilter(baseMinuteQuery(), test.filter).
				PlaceholderFormat(sq.Question).
				ToSql()
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			for _, clause := range test.clauses {
				if !strings.Contains(query, clause) {
					t.Fatalf("expected query to contain %q, got %s", clause, query)
				}
			}

			if len(args) != test.args {
				t.Fatalf("expected %d args, got %d: %v", test.args, len(args), args)
			}

			if !strings.HasSuffix(query, "ORDER BY m.meeting_date DESC") {
				t.Fatalf("expected ordering by meeting date, got %s", query)
			}
		})
	}
}
