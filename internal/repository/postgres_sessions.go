package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Study session repository methods. Sessions are append-only input to the
// weekly aggregation; the only update ever applied is finishing an
// in-progress session.

func (r *PostgresRepository) CreateStudySession(ctx context.Context, session *models.StudySession) error {
	query := `
		INSERT INTO study_sessions (id, user_id, started_at, ended_at, duration_minutes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	// Generate a new UUID if not provided
	if session.ID == "" {
		session.ID = uuid.New().String()
	}

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, query,
		session.ID, session.UserID, session.StartedAt, session.EndedAt,
		session.DurationMinutes, session.CreatedAt)

	return err
}

func (r *PostgresRepository) GetStudySession(ctx context.Context, id string) (*models.StudySession, error) {
	query := `SELECT * FROM study_sessions WHERE id = $1`

	var session models.StudySession
	err := r.db.GetContext(ctx, &session, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Session not found
		}
		return nil, err
	}

	return &session, nil
}

// FinishStudySession stamps the end time and duration on an in-progress
// session. The ended_at IS NULL guard arbitrates concurrent finishes: only
// one caller sees the update apply, reported through the returned bool so
// the cumulative study time is bumped exactly once.
func (r *PostgresRepository) FinishStudySession(ctx context.Context, id string, endedAt time.Time, durationMinutes int) (bool, error) {
	query := `
		UPDATE study_sessions
		SET ended_at = $1, duration_minutes = $2
		WHERE id = $3 AND ended_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, endedAt, durationMinutes, id)
	if err != nil {
		return false, err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

func (r *PostgresRepository) ListStudySessions(ctx context.Context, userID string, limit int) ([]models.StudySession, error) {
	query := `
		SELECT * FROM study_sessions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	var sessions []models.StudySession
	if err := r.db.SelectContext(ctx, &sessions, query, userID, limit); err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *PostgresRepository) ListStudySessionsSince(ctx context.Context, userID string, since time.Time) ([]models.StudySession, error) {
	query := `
		SELECT * FROM study_sessions
		WHERE user_id = $1 AND created_at >= $2
		ORDER BY created_at
	`

	var sessions []models.StudySession
	if err := r.db.SelectContext(ctx, &sessions, query, userID, since); err != nil {
		return nil, err
	}

	return sessions, nil
}
