package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/studyhub/studyhub-server/internal/models"
)

// Timetable repository methods.

func (r *PostgresRepository) CreateTimeSlot(ctx context.Context, slot *models.TimeSlot) error {
	query := `
		INSERT INTO timetable_slots (id, user_id, day, start_time, end_time, subject, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	// Generate a new UUID if not provided
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}

	slot.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		slot.ID, slot.UserID, slot.Day, slot.StartTime, slot.EndTime, slot.Subject, slot.CreatedAt)

	return err
}

func (r *PostgresRepository) GetTimeSlot(ctx context.Context, id string) (*models.TimeSlot, error) {
	query := `SELECT * FROM timetable_slots WHERE id = $1`

	var slot models.TimeSlot
	err := r.db.GetContext(ctx, &slot, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Slot not found
		}
		return nil, err
	}

	return &slot, nil
}

func (r *PostgresRepository) UpdateTimeSlot(ctx context.Context, slot *models.TimeSlot) error {
	query := `
		UPDATE timetable_slots
		SET day = $1, start_time = $2, end_time = $3, subject = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query,
		slot.Day, slot.StartTime, slot.EndTime, slot.Subject, slot.ID)

	return err
}

func (r *PostgresRepository) DeleteTimeSlot(ctx context.Context, id string) error {
	query := `DELETE FROM timetable_slots WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepository) ListTimeSlots(ctx context.Context, userID string) ([]models.TimeSlot, error) {
	// Weekday names don't sort chronologically; order by position in the
	// Monday-first week.
	query := `
		SELECT * FROM timetable_slots
		WHERE user_id = $1
		ORDER BY array_position(ARRAY['Monday','Tuesday','Wednesday','Thursday','Friday','Saturday','Sunday'], day), start_time
	`

	var slots []models.TimeSlot
	if err := r.db.SelectContext(ctx, &slots, query, userID); err != nil {
		return nil, err
	}

	return slots, nil
}

// Library repository methods.

func (r *PostgresRepository) CreateLibraryItem(ctx context.Context, item *models.LibraryItem) error {
	query := `
		INSERT INTO library_items (id, user_id, title, drive_file_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	// Generate a new UUID if not provided
	if item.ID == "" {
		item.ID = uuid.New().String()
	}

	item.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.UserID, item.Title, item.DriveFileID, item.CreatedAt)

	return err
}

func (r *PostgresRepository) GetLibraryItem(ctx context.Context, id string) (*models.LibraryItem, error) {
	query := `SELECT * FROM library_items WHERE id = $1`

	var item models.LibraryItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Item not found
		}
		return nil, err
	}

	return &item, nil
}

func (r *PostgresRepository) DeleteLibraryItem(ctx context.Context, id string) error {
	query := `DELETE FROM library_items WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id)
	return err
}

func (r *PostgresRepository) ListLibraryItems(ctx context.Context, userID string) ([]models.LibraryItem, error) {
	query := `
		SELECT * FROM library_items
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	var items []models.LibraryItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, err
	}

	return items, nil
}
