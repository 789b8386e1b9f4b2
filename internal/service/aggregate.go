package service

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhub/studyhub-server/internal/models"
)

// Aggregation over the append-only event collections. Both queries are
// bounded window scans, not maintained counters: the weekly window holds at
// most a week of one user's sessions and the monthly window one month of
// their transactions, so scanning at query time is cheap and self-healing.

// StartOfWeek returns the start of the week containing t. Weeks start
// Monday 00:00 UTC, matching the timetable's Monday-first layout.
func StartOfWeek(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// sessionMinutes returns the minutes a single session contributes. A
// recorded duration wins; otherwise the duration is derived from the start
// and end times, with a missing end treated as now so an in-progress
// session contributes its elapsed time.
func sessionMinutes(session models.StudySession, now time.Time) int {
	if session.DurationMinutes != nil {
		return *session.DurationMinutes
	}

	end := now
	if session.EndedAt != nil {
		end = *session.EndedAt
	}

	minutes := int(end.Sub(session.StartedAt) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}

// WeeklyStudyMinutes sums the study minutes of userID's sessions created in
// [StartOfWeek(now), now]. A session created exactly on the week boundary
// is included.
func (s *DefaultService) WeeklyStudyMinutes(ctx context.Context, userID string, now time.Time) (int, error) {
	if minutes, ok := s.weekly.Get(ctx, userID); ok {
		return minutes, nil
	}

	sessions, err := s.repo.ListStudySessionsSince(ctx, userID, StartOfWeek(now))
	if err != nil {
		return 0, fmt.Errorf("error scanning study sessions: %w", err)
	}

	total := 0
	for _, session := range sessions {
		total += sessionMinutes(session, now)
	}

	s.weekly.Set(ctx, userID, total)
	return total, nil
}

// MonthlySummary folds a calendar month of transactions into per-category
// net and absolute totals. Categories without activity are omitted; the
// reported total expenditure sums the absolute totals of the categories
// whose net is negative.
func (s *DefaultService) MonthlySummary(ctx context.Context, userID string, year, month int) (*models.MonthlySummaryResponse, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	summary, err := s.repo.SummarizeTransactions(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error summarizing transactions: %w", err)
	}

	var totalExpenditure float64
	for _, entry := range summary {
		if entry.NetTotal < 0 {
			totalExpenditure += entry.AbsoluteTotal
		}
	}

	return &models.MonthlySummaryResponse{
		Status:           "success",
		Year:             year,
		Month:            month,
		Categories:       summary,
		TotalExpenditure: totalExpenditure,
	}, nil
}
