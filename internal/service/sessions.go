package service

import (
	"context"
	"fmt"
	"time"

	"github.com/studyhub/studyhub-server/internal/models"
	"github.com/studyhub/studyhub-server/internal/realtime"
)

// recentSessionLimit bounds the session history returned to the client.
const recentSessionLimit = 20

// RecordStudySession stores an already completed session and bumps the
// user's cumulative study time.
func (s *DefaultService) RecordStudySession(ctx context.Context, userID string, durationMinutes int) (*models.StudySession, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
	}

	session := &models.StudySession{
		UserID:          userID,
		StartedAt:       time.Now().UTC(),
		DurationMinutes: &durationMinutes,
	}

	if err := s.repo.CreateStudySession(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating study session: %w", err)
	}

	if err := s.repo.AddStudyTime(ctx, userID, durationMinutes); err != nil {
		return nil, fmt.Errorf("error updating study time: %w", err)
	}

	s.weekly.Invalidate(ctx, userID)
	s.notify(userID, realtime.ResourceSessions)
	return session, nil
}

// StartStudySession opens an in-progress session. Until it is finished the
// session contributes its elapsed time to the weekly aggregate.
func (s *DefaultService) StartStudySession(ctx context.Context, userID string) (*models.StudySession, error) {
	session := &models.StudySession{
		UserID:    userID,
		StartedAt: time.Now().UTC(),
	}

	if err := s.repo.CreateStudySession(ctx, session); err != nil {
		return nil, fmt.Errorf("error creating study session: %w", err)
	}

	s.weekly.Invalidate(ctx, userID)
	s.notify(userID, realtime.ResourceSessions)
	return session, nil
}

// FinishStudySession closes an in-progress session, derives its duration
// from the elapsed time and bumps the user's cumulative study time.
func (s *DefaultService) FinishStudySession(ctx context.Context, userID, sessionID string) (*models.StudySession, error) {
	session, err := s.repo.GetStudySession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("error getting study session: %w", err)
	}

	if session == nil || session.UserID != userID {
		return nil, fmt.Errorf("%w: study session does not exist", ErrNotFound)
	}

	if session.EndedAt != nil {
		return nil, fmt.Errorf("%w: session already finished", ErrInvalidState)
	}

	endedAt := time.Now().UTC()
	minutes := int(endedAt.Sub(session.StartedAt) / time.Minute)
	if minutes < 0 {
		minutes = 0
	}

	// The guarded update arbitrates concurrent finishes: if it did not
	// apply, another caller finished the session after the read above, and
	// the study time must not be bumped again.
	finished, err := s.repo.FinishStudySession(ctx, sessionID, endedAt, minutes)
	if err != nil {
		return nil, fmt.Errorf("error finishing study session: %w", err)
	}

	if !finished {
		return nil, fmt.Errorf("%w: session already finished", ErrInvalidState)
	}

	if err := s.repo.AddStudyTime(ctx, userID, minutes); err != nil {
		return nil, fmt.Errorf("error updating study time: %w", err)
	}

	session.EndedAt = &endedAt
	session.DurationMinutes = &minutes

	s.weekly.Invalidate(ctx, userID)
	s.notify(userID, realtime.ResourceSessions)
	return session, nil
}

func (s *DefaultService) ListStudySessions(ctx context.Context, userID string) ([]models.StudySession, error) {
	sessions, err := s.repo.ListStudySessions(ctx, userID, recentSessionLimit)
	if err != nil {
		return nil, fmt.Errorf("error listing study sessions: %w", err)
	}

	return sessions, nil
}
